package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/reclaim"
	"github.com/raphi011/treefrog/internal/worktree"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "checkout <branch>",
		Short:             "Move a branch from its worktree back into the main repository",
		Aliases:           []string{"spotlight"},
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Remove the worktree of a branch and check the branch out in the main
repository.

Uncommitted changes in the worktree (staged, modified and untracked files)
are stashed first and restored in the main repository afterwards, with the
index preserved. If any step after stashing fails, the stash is kept and
the error names the command that recovers it.`,
		Example: `  treefrog checkout feature/login
  treefrog spotlight feature/login   # same thing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}

			branch := args[0]
			res, err := reclaim.New(rc.repo).Reclaim(ctx, branch)
			if err != nil {
				if worktree.IsKind(err, worktree.NotFound) {
					return withSuggestions(ctx, rc.store, branch, err)
				}
				return err
			}

			l.Debug("reclaimed", "branch", res.Branch, "stashed", res.Stashed, "dropped", res.Dropped)
			out.Success("Branch '%s' is now active in main repository!", res.Branch)
			out.Info("Main repository: %s", res.MainDir)
			return nil
		},
	}

	return cmd
}
