package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raphi011/treefrog/internal/cmd"
)

// ErrNotInRepository is returned by Open when the directory is not inside a
// git working tree.
var ErrNotInRepository = errors.New("not inside a git repository")

// Repo is a handle on the repository that contains dir.
type Repo struct {
	runner cmd.Runner
	dir    string
}

// Open returns a handle for the repository containing dir.
func Open(ctx context.Context, runner cmd.Runner, dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	r := &Repo{runner: runner, dir: abs}
	if err := r.run(ctx, abs, "rev-parse", "--git-dir"); err != nil {
		if exitCode(err) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotInRepository, abs)
		}
		return nil, err
	}
	return r, nil
}

// ListWorktrees returns every worktree of the repository, main first.
func (r *Repo) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	out, err := r.output(ctx, r.dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return ParseWorktreeList(out)
}

// MainDir returns the top-level directory of the main worktree.
func (r *Repo) MainDir(ctx context.Context) (string, error) {
	worktrees, err := r.ListWorktrees(ctx)
	if err != nil {
		return "", err
	}
	if len(worktrees) == 0 {
		return "", errors.New("git worktree list returned no entries")
	}
	return worktrees[0].Path, nil
}

// RepoName returns the base name of the main worktree directory.
func (r *Repo) RepoName(ctx context.Context) (string, error) {
	main, err := r.MainDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Base(main), nil
}

// FindWorktreeByBranch returns the path of the worktree that has the local
// branch checked out. ok is false when no worktree has it.
func (r *Repo) FindWorktreeByBranch(ctx context.Context, branch string) (path string, ok bool, err error) {
	worktrees, err := r.ListWorktrees(ctx)
	if err != nil {
		return "", false, err
	}
	want := branchRefPrefix + branch
	for _, wt := range worktrees {
		if wt.Branch != "" && branchRefPrefix+wt.Branch == want {
			return wt.Path, true, nil
		}
	}
	return "", false, nil
}

// CurrentBranch returns the branch checked out in dir, or "" when HEAD is
// detached.
func (r *Repo) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := r.output(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HasChanges reports whether dir has staged, modified or untracked files.
func (r *Repo) HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := r.output(ctx, dir, "status", "--porcelain", "--untracked-files=normal")
	if err != nil {
		return false, fmt.Errorf("failed to get status of %s: %w", dir, err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// AddWorktree creates a worktree at path. With newBranch the branch is
// created from the current HEAD, otherwise the existing branch is attached.
func (r *Repo) AddWorktree(ctx context.Context, mainDir, path, branch string, newBranch bool) error {
	args := []string{"worktree", "add", path, branch}
	if newBranch {
		args = []string{"worktree", "add", "-b", branch, path}
	}
	return r.run(ctx, mainDir, args...)
}

// RemoveWorktree force-removes the worktree at path. The branch is kept.
func (r *Repo) RemoveWorktree(ctx context.Context, mainDir, path string) error {
	return r.run(ctx, mainDir, "worktree", "remove", "--force", path)
}

// Checkout checks out branch in dir.
func (r *Repo) Checkout(ctx context.Context, dir, branch string) error {
	return r.run(ctx, dir, "checkout", branch, "--")
}

// DetachHead detaches HEAD in dir at the current commit.
func (r *Repo) DetachHead(ctx context.Context, dir string) error {
	if err := r.run(ctx, dir, "checkout", "--detach"); err != nil {
		return fmt.Errorf("failed to detach HEAD: %w", err)
	}
	return nil
}
