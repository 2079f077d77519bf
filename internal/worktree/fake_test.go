package worktree

import (
	"context"
	"errors"
	"os"

	"github.com/raphi011/treefrog/internal/git"
)

// fakeGit is an in-memory repository. Worktree directories are created and
// removed on disk so placement checks see them.
type fakeGit struct {
	main      string
	branches  map[string]bool
	worktrees []git.Worktree
	calls     []string

	listErr error
	addErr  error
}

func newFakeGit(main string, branches ...string) *fakeGit {
	f := &fakeGit{
		main:      main,
		branches:  map[string]bool{"main": true},
		worktrees: []git.Worktree{{Path: main, Branch: "main"}},
	}
	for _, b := range branches {
		f.branches[b] = true
	}
	return f
}

func (f *fakeGit) MainDir(ctx context.Context) (string, error) {
	if f.listErr != nil {
		return "", f.listErr
	}
	return f.main, nil
}

func (f *fakeGit) ListWorktrees(ctx context.Context) ([]git.Worktree, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]git.Worktree(nil), f.worktrees...), nil
}

func (f *fakeGit) FindWorktreeByBranch(ctx context.Context, branch string) (string, bool, error) {
	if f.listErr != nil {
		return "", false, f.listErr
	}
	for _, wt := range f.worktrees {
		if wt.Branch == branch {
			return wt.Path, true, nil
		}
	}
	return "", false, nil
}

func (f *fakeGit) BranchExists(ctx context.Context, branch string) (bool, error) {
	return f.branches[branch], nil
}

func (f *fakeGit) AddWorktree(ctx context.Context, mainDir, path, branch string, newBranch bool) error {
	op := "add"
	if newBranch {
		op = "add -b"
	}
	f.calls = append(f.calls, op+" "+branch)
	if f.addErr != nil {
		return f.addErr
	}
	for _, wt := range f.worktrees {
		if wt.Branch == branch {
			return errors.New("fatal: '" + branch + "' is already used by worktree at '" + wt.Path + "'")
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	f.branches[branch] = true
	f.worktrees = append(f.worktrees, git.Worktree{Path: path, Branch: branch})
	return nil
}

func (f *fakeGit) RemoveWorktree(ctx context.Context, mainDir, path string) error {
	f.calls = append(f.calls, "remove "+path)
	for i, wt := range f.worktrees {
		if wt.Path == path && i > 0 {
			f.worktrees = append(f.worktrees[:i], f.worktrees[i+1:]...)
			return os.RemoveAll(path)
		}
	}
	return errors.New("fatal: '" + path + "' is not a working tree")
}
