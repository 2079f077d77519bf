package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
)

func newPathCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:               "path <branch>",
		Short:             "Print the worktree path of a branch",
		GroupID:           GroupUtility,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long:              `Print the path of a branch's managed worktree, for use with cd.`,
		Example: `  cd "$(treefrog path feature/login)"
  treefrog path feature/login --copy   # also copy it to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := rc.resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if copyPath {
				if err := clipboard.WriteAll(wt.Path); err != nil {
					l.Warnf("failed to copy to clipboard: %v", err)
				} else {
					l.Debug("copied to clipboard", "path", wt.Path)
				}
			}

			out.Println(wt.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the path to the clipboard")

	return cmd
}
