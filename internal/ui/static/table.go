// Package static renders non-interactive terminal output such as tables.
package static

import (
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/treefrog/internal/ui/styles"
	"github.com/raphi011/treefrog/internal/worktree"
)

// WorktreeHeaders are the columns of the worktree table.
var WorktreeHeaders = []string{"", "BRANCH", "PATH"}

// RenderTable renders headers and rows without borders, columns padded to
// the widest cell. Returns "" for no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TitleStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// WorktreeRows builds table rows for worktrees. The worktree containing
// cwd is marked with "*".
func WorktreeRows(worktrees []worktree.Worktree, cwd string) [][]string {
	rows := make([][]string, 0, len(worktrees))
	for _, wt := range worktrees {
		marker := ""
		if cwd != "" && within(cwd, wt.Path) {
			marker = styles.AccentStyle.Render("*")
		}
		branch := wt.Branch
		if branch == "" {
			branch = styles.MutedStyle.Render("(detached)")
		}
		rows = append(rows, []string{marker, branch, wt.Path})
	}
	return rows
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
