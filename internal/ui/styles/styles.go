// Package styles provides shared lipgloss styles for treefrog's terminal
// output and prompts.
package styles

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components.
type Theme struct {
	Primary color.Color // titles, prompt borders
	Accent  color.Color // selected items
	Success color.Color
	Error   color.Color
	Warning color.Color
	Muted   color.Color // banners, hints
	Normal  color.Color
	Info    color.Color
}

var (
	// DefaultTheme is a 256-color palette that reads well on dark terminals.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Accent:  lipgloss.Color("212"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Warning: lipgloss.Color("214"),
		Muted:   lipgloss.Color("240"),
		Normal:  lipgloss.Color("252"),
		Info:    lipgloss.Color("244"),
	}

	// NoneTheme disables colors.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

var themes = map[string]Theme{
	"default": DefaultTheme,
	"none":    NoneTheme,
}

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{"default", "none"}

var (
	BoldStyle    lipgloss.Style
	TitleStyle   lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	NormalStyle  lipgloss.Style
	InfoStyle    lipgloss.Style

	// BorderStyle frames interactive prompts.
	BorderStyle lipgloss.Style
)

var current Theme

func init() {
	Apply(DefaultTheme)
}

// Current returns the active theme.
func Current() Theme {
	return current
}

// Init selects a theme by name. An empty name keeps the default.
func Init(name string) error {
	if name == "" {
		Apply(DefaultTheme)
		return nil
	}
	theme, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	Apply(theme)
	return nil
}

// Apply rebuilds the package styles from a theme.
func Apply(t Theme) {
	current = t

	BoldStyle = lipgloss.NewStyle().Bold(true)
	TitleStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info)
	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
}
