package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/cmd"
	"github.com/raphi011/treefrog/internal/config"
	"github.com/raphi011/treefrog/internal/hooks"
	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/share"
	"github.com/raphi011/treefrog/internal/shell"
	"github.com/raphi011/treefrog/internal/ui/prompt"
	"github.com/raphi011/treefrog/internal/worktree"
)

func newCreateCmd() *cobra.Command {
	var (
		startShell bool
		current    bool
	)

	cmd := &cobra.Command{
		Use:     "create [branch]",
		Short:   "Create a worktree for a branch",
		Aliases: []string{"new"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Create a worktree for a branch under the treefrog base directory.

An existing branch is attached; a missing one is created from the current
HEAD. Files listed in the repository's share_files are symlinked from the
main repository, clone_files are copied, and commands run in the new
worktree.

With --current, the branch checked out in the main repository is moved
into the worktree and the main repository is left on a detached HEAD.`,
		Example: `  treefrog create feature/login      # attach or create feature/login
  treefrog create fix-42 --shell     # and start a subshell in it
  treefrog create --current          # move the current branch into a worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}

			branch, err := createBranchArg(ctx, rc, args, current)
			if err != nil {
				return err
			}

			project, err := rc.project(ctx)
			if err != nil {
				return err
			}

			if current {
				if err := detachCurrent(ctx, rc, branch); err != nil {
					return err
				}
			}

			l.Printf("Creating worktree: %s\n", rc.store.Placement().For(branch))
			wt, err := rc.store.Create(ctx, branch)
			if err != nil {
				if current {
					reattach(ctx, rc, branch)
				}
				return err
			}
			l.Debug("worktree created", "path", wt.Path, "origin", wt.Origin)

			if err := setupWorktree(ctx, project, rc, wt); err != nil {
				return err
			}

			out.Success("Worktree created successfully!")
			out.Info("Worktree: %s", wt.Path)

			if startShell {
				return shell.Start(ctx, shell.Options{Dir: wt.Path, Branch: wt.Branch})
			}
			l.Println("Run a new shell to stay in this directory, or use 'cd' to navigate here.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&startShell, "shell", "s", false, "Start an interactive shell in the new worktree")
	cmd.Flags().BoolVar(&current, "current", false, "Move the branch checked out in the main repository into the worktree")

	return cmd
}

// createBranchArg determines the branch to create a worktree for.
func createBranchArg(ctx context.Context, rc *repoContext, args []string, current bool) (string, error) {
	if current {
		if len(args) > 0 {
			return "", errors.New("--current does not take a branch argument")
		}
		branch, err := rc.repo.CurrentBranch(ctx, rc.mainDir)
		if err != nil {
			return "", err
		}
		if branch == "" {
			return "", errors.New("Cannot use --current with a detached HEAD")
		}
		return branch, nil
	}

	if len(args) == 1 {
		return args[0], nil
	}
	if !isInteractive() {
		return "", errors.New("branch name required")
	}
	res, err := prompt.TextInput("Branch name", "feature/...")
	if err != nil {
		return "", err
	}
	if res.Cancelled || res.Value == "" {
		return "", errCancelled
	}
	return res.Value, nil
}

// detachCurrent frees branch in the main repository by detaching HEAD. The
// placement is checked first so a collision leaves the main checkout as is.
func detachCurrent(ctx context.Context, rc *repoContext, branch string) error {
	path := rc.store.Placement().For(branch)
	if _, err := os.Lstat(path); err == nil {
		return &worktree.Error{Kind: worktree.AlreadyExists, Branch: branch, Path: path}
	}

	log.FromContext(ctx).Printf("Detaching HEAD to free branch: %s\n", branch)
	return rc.repo.DetachHead(ctx, rc.mainDir)
}

// reattach checks branch out in the main repository again after a failed
// create --current.
func reattach(ctx context.Context, rc *repoContext, branch string) {
	l := log.FromContext(ctx)
	if err := rc.repo.Checkout(ctx, rc.mainDir, branch); err != nil {
		l.Warnf("failed to check out '%s' in main repository again: %v", branch, err)
		return
	}
	l.Printf("Restored branch '%s' in main repository\n", branch)
}

// setupWorktree applies the repository's share, clone and command settings
// to a new worktree.
func setupWorktree(ctx context.Context, project config.Project, rc *repoContext, wt worktree.Worktree) error {
	l := log.FromContext(ctx)

	if project.IsEmpty() {
		l.Debug("no setup configured", "repo", rc.mainDir)
		return nil
	}

	if len(project.ShareFiles) > 0 {
		l.Println("Creating symlinks for shared files...")
		if err := share.Link(ctx, project.ShareFiles, rc.mainDir, wt.Path); err != nil {
			return err
		}
	}
	if len(project.CloneFiles) > 0 {
		l.Println("Copying files from main repo...")
		if err := share.Copy(ctx, project.CloneFiles, rc.mainDir, wt.Path); err != nil {
			return err
		}
	}

	failed := hooks.Run(ctx, cmd.Exec{}, project.Commands, hooks.Context{
		Path:     wt.Path,
		Branch:   wt.Branch,
		Repo:     rc.name,
		MainRepo: rc.mainDir,
	})
	if len(failed) > 0 {
		l.Warnf("%d setup %s failed", len(failed), plural(len(failed), "command", "commands"))
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("setup interrupted: %w", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
