package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/ui/prompt"
	"github.com/raphi011/treefrog/internal/worktree"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "remove [branch]",
		Short:             "Remove a worktree, keeping its branch",
		Aliases:           []string{"rm"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Remove the managed worktree of a branch. The branch itself is kept.

Without a branch, the worktree containing the current directory is removed.
Uncommitted changes in the worktree are discarded; on a terminal you are
asked to confirm first unless --force is given.`,
		Example: `  treefrog remove feature/login
  treefrog remove                    # from inside a worktree
  treefrog rm fix-42 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}

			var wt worktree.Worktree
			fromInside := len(args) == 0
			if fromInside {
				dir, err := currentDir()
				if err != nil {
					return err
				}
				wt, err = rc.store.Current(ctx, dir)
				if err != nil {
					return err
				}
			} else {
				wt, err = rc.resolve(ctx, args[0])
				if err != nil {
					return err
				}
			}

			if !force && isInteractive() {
				dirty, err := rc.repo.HasChanges(ctx, wt.Path)
				if err != nil {
					return err
				}
				if dirty {
					res, err := prompt.Confirm(fmt.Sprintf("%s has uncommitted changes that will be lost. Remove anyway?", wt.Path))
					if err != nil {
						return err
					}
					if res.Cancelled || !res.Confirmed {
						l.Println("Cancelled")
						return nil
					}
				}
			}

			l.Printf("Removing treefrog worktree: %s\n", filepath.Base(wt.Path))
			l.Printf("Branch: %s\n", wt.Branch)

			if fromInside {
				// The worktree is about to disappear under us.
				if err := os.Chdir(rc.mainDir); err != nil {
					return fmt.Errorf("failed to change to main repository: %w", err)
				}
			}

			l.Println("Removing worktree...")
			if err := rc.store.Remove(ctx, wt.Path); err != nil {
				return err
			}

			if wt.Branch != "" {
				l.Printf("Branch '%s' preserved\n", wt.Branch)
			}
			out.Success("Removal completed!")
			if fromInside {
				out.Info("Main repository: %s", rc.mainDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without asking, even with uncommitted changes")

	return cmd
}
