package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/treefrog/internal/cmd"
	"github.com/raphi011/treefrog/internal/config"
	"github.com/raphi011/treefrog/internal/git"
	"github.com/raphi011/treefrog/internal/worktree"
)

// repoContext bundles the handles a command needs for the repository the
// working directory belongs to.
type repoContext struct {
	repo    *git.Repo
	store   *worktree.Store
	mainDir string
	name    string
}

// currentDir returns the directory commands operate from.
func currentDir() (string, error) {
	if workDir != "" {
		return workDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// openRepo opens the repository of the working directory and builds its
// worktree store.
func openRepo(ctx context.Context) (*repoContext, error) {
	dir, err := currentDir()
	if err != nil {
		return nil, err
	}

	repo, err := git.Open(ctx, cmd.Exec{}, dir)
	if err != nil {
		if errors.Is(err, git.ErrNotInRepository) {
			return nil, &worktree.Error{Kind: worktree.NotInRepository, Path: dir, Err: err}
		}
		return nil, err
	}

	mainDir, err := repo.MainDir(ctx)
	if err != nil {
		return nil, err
	}
	name, err := repo.RepoName(ctx)
	if err != nil {
		return nil, err
	}

	var configured string
	if cfg := config.FromContext(ctx); cfg != nil {
		configured = cfg.WorktreeBase
	}
	base, err := worktree.BaseDir(os.Getenv, configured)
	if err != nil {
		return nil, err
	}

	return &repoContext{
		repo:    repo,
		store:   worktree.NewStore(repo, worktree.Placement{Base: base, Repo: name}),
		mainDir: mainDir,
		name:    name,
	}, nil
}

// project returns the merged setup configuration of the repository.
func (rc *repoContext) project(ctx context.Context) (config.Project, error) {
	return config.FromContext(ctx).Resolve(rc.mainDir)
}

// resolve finds the managed worktree of branch, adding suggestions to a
// not-found error.
func (rc *repoContext) resolve(ctx context.Context, branch string) (worktree.Worktree, error) {
	wt, err := rc.store.Resolve(ctx, branch)
	if err != nil && worktree.IsKind(err, worktree.NotFound) {
		return wt, withSuggestions(ctx, rc.store, branch, err)
	}
	return wt, err
}

// withSuggestions appends "did you mean" hints for similar managed
// branches. The original error stays in the chain.
func withSuggestions(ctx context.Context, store *worktree.Store, branch string, err error) error {
	managed, listErr := store.Inventory(ctx)
	if listErr != nil {
		return err
	}
	suggestions := worktree.Suggest(branch, managed)
	if len(suggestions) == 0 {
		return err
	}
	return fmt.Errorf("%w\n\nDid you mean:\n  %s", err, strings.Join(suggestions, "\n  "))
}

// isInteractive reports whether prompts can be shown: stdin and stderr
// must be terminals.
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
