package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ValidThemes lists the accepted theme names.
var ValidThemes = []string{"default", "none"}

func (c *Config) validate() error {
	if err := ValidatePath(c.WorktreeBase, "worktree_base"); err != nil {
		return err
	}
	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}
	for key, p := range c.Projects {
		if key == "" {
			return fmt.Errorf("project key must not be empty")
		}
		if err := ValidatePath(key, fmt.Sprintf("project %q", key)); err != nil {
			return err
		}
		if err := p.validate(fmt.Sprintf("projects.%q", key)); err != nil {
			return err
		}
	}
	return nil
}

func (p Project) validate(section string) error {
	for _, list := range []struct {
		field   string
		entries []string
		isFile  bool
	}{
		{"share_files", p.ShareFiles, true},
		{"clone_files", p.CloneFiles, true},
		{"commands", p.Commands, false},
	} {
		for i, entry := range list.entries {
			if strings.TrimSpace(entry) == "" {
				return fmt.Errorf("%s.%s[%d] must not be empty", section, list.field, i)
			}
			if list.isFile {
				if err := ValidateRelative(entry); err != nil {
					return fmt.Errorf("%s.%s[%d]: %w", section, list.field, i, err)
				}
			}
		}
	}
	return nil
}

// ValidatePath checks that path is absolute or starts with ~.
// Empty is allowed and means not configured.
func ValidatePath(path, fieldName string) error {
	if path == "" || path == "~" || strings.HasPrefix(path, "~/") {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ValidateRelative checks that a shared or cloned file stays inside the
// repository.
func ValidateRelative(file string) error {
	if filepath.IsAbs(file) {
		return fmt.Errorf("%q must be relative to the repository", file)
	}
	clean := filepath.Clean(file)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q points outside the repository", file)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
