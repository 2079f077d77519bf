package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/shell"
	"github.com/raphi011/treefrog/internal/ui/prompt"
	"github.com/raphi011/treefrog/internal/worktree"
)

func newEnterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "enter [branch]",
		Short:             "Start a shell in a branch's worktree",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Start an interactive subshell in the managed worktree of a branch.

Without a branch, a picker lists the repository's worktrees. Exit the
subshell (Ctrl-D) to return to where you were.`,
		Example: `  treefrog enter feature/login
  treefrog enter                     # pick a worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}

			var wt worktree.Worktree
			if len(args) == 1 {
				wt, err = rc.resolve(ctx, args[0])
			} else {
				wt, err = pickWorktree(ctx, rc, "Enter worktree")
			}
			if err != nil {
				return err
			}

			l.Printf("Entering treefrog worktree: %s\n", filepath.Base(wt.Path))
			l.Printf("Branch: %s\n", wt.Branch)
			out.Success("You are now in: %s", wt.Path)

			return shell.Start(ctx, shell.Options{Dir: wt.Path, Branch: wt.Branch})
		},
	}

	return cmd
}

// errCancelled is returned when the user dismisses a prompt.
var errCancelled = errors.New("cancelled")

// pickWorktree lets the user choose one of the repository's managed
// worktrees.
func pickWorktree(ctx context.Context, rc *repoContext, title string) (worktree.Worktree, error) {
	if !isInteractive() {
		return worktree.Worktree{}, errors.New("branch name required")
	}

	managed, err := rc.store.Inventory(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	if len(managed) == 0 {
		return worktree.Worktree{}, errors.New("No active treefrog worktrees found")
	}

	options := make([]prompt.Option, len(managed))
	for i, wt := range managed {
		name := wt.Branch
		if name == "" {
			name = filepath.Base(wt.Path)
		}
		options[i] = prompt.Option{Title: name, Description: wt.Path}
	}

	res, err := prompt.Select(title, options)
	if err != nil {
		return worktree.Worktree{}, err
	}
	if res.Cancelled {
		return worktree.Worktree{}, errCancelled
	}
	return managed[res.Index], nil
}
