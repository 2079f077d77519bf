package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/ui/static"
	"github.com/raphi011/treefrog/internal/ui/styles"
	"github.com/raphi011/treefrog/internal/worktree"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List managed worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the repository's worktrees that live under the treefrog base
directory. The worktree containing the current directory is marked with *.`,
		Example: `  treefrog list
  treefrog list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}

			managed, err := rc.store.Inventory(ctx)
			if err != nil {
				return err
			}
			l.Debug("listing worktrees", "base", rc.store.Placement().Base, "count", len(managed))

			if jsonOutput {
				if managed == nil {
					managed = []worktree.Worktree{}
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(managed)
			}

			if len(managed) == 0 {
				out.Info("No active treefrog worktrees found")
				return nil
			}

			dir, _ := currentDir()
			out.Println(styles.TitleStyle.Render("Active treefrog worktrees:"))
			out.Print(static.RenderTable(static.WorktreeHeaders, static.WorktreeRows(managed, dir)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
