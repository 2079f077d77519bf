package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/treefrog/internal/git"
)

// Git is the repository surface the store needs. *git.Repo implements it.
type Git interface {
	MainDir(ctx context.Context) (string, error)
	ListWorktrees(ctx context.Context) ([]git.Worktree, error)
	FindWorktreeByBranch(ctx context.Context, branch string) (string, bool, error)
	BranchExists(ctx context.Context, branch string) (bool, error)
	AddWorktree(ctx context.Context, mainDir, path, branch string, newBranch bool) error
	RemoveWorktree(ctx context.Context, mainDir, path string) error
}

// Origin records how a worktree's branch came to be.
type Origin int

const (
	OriginUnknown   Origin = iota
	OriginAttached         // existing branch attached
	OriginNewBranch        // branch created with the worktree
)

func (o Origin) String() string {
	switch o {
	case OriginAttached:
		return "attached"
	case OriginNewBranch:
		return "new-branch"
	}
	return "unknown"
}

// Worktree is a managed worktree.
type Worktree struct {
	Path   string `json:"path"`
	Branch string `json:"branch"`
	Origin Origin `json:"-"`
}

// Store manages worktrees of one repository.
type Store struct {
	git       Git
	placement Placement
}

// NewStore returns a Store placing worktrees with p.
func NewStore(g Git, p Placement) *Store {
	return &Store{git: g, placement: p}
}

// Placement returns the store's placement policy.
func (s *Store) Placement() Placement {
	return s.placement
}

// Create adds a worktree for branch at its placement. An existing branch is
// attached; a missing one is created from the current HEAD.
func (s *Store) Create(ctx context.Context, branch string) (Worktree, error) {
	if branch == "" {
		return Worktree{}, &Error{Kind: CreationFailed, Err: errors.New("branch name is required")}
	}

	path := s.placement.For(branch)
	if _, err := os.Lstat(path); err == nil {
		return Worktree{}, &Error{Kind: AlreadyExists, Branch: branch, Path: path}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Worktree{}, &Error{Kind: CreationFailed, Branch: branch, Path: path, Err: err}
	}

	mainDir, err := s.git.MainDir(ctx)
	if err != nil {
		return Worktree{}, &Error{Kind: ExternalCommandFailed, Op: "failed to locate main repository", Err: err}
	}

	if err := os.MkdirAll(s.placement.RepoDir(), 0o755); err != nil {
		return Worktree{}, &Error{Kind: CreationFailed, Branch: branch, Path: path, Err: err}
	}

	exists, err := s.git.BranchExists(ctx, branch)
	if err != nil {
		return Worktree{}, &Error{Kind: ExternalCommandFailed, Op: "failed to check branch", Branch: branch, Err: err}
	}

	origin := OriginAttached
	if !exists {
		origin = OriginNewBranch
	}
	if err := s.git.AddWorktree(ctx, mainDir, path, branch, !exists); err != nil {
		return Worktree{}, &Error{Kind: CreationFailed, Branch: branch, Path: path, Err: err}
	}

	return Worktree{Path: path, Branch: branch, Origin: origin}, nil
}

// Resolve returns the managed worktree that has branch checked out.
func (s *Store) Resolve(ctx context.Context, branch string) (Worktree, error) {
	path, ok, err := s.git.FindWorktreeByBranch(ctx, branch)
	if err != nil {
		return Worktree{}, &Error{Kind: ExternalCommandFailed, Op: "failed to list worktrees", Branch: branch, Err: err}
	}
	if !ok {
		return Worktree{}, &Error{Kind: NotFound, Branch: branch}
	}
	if !s.placement.IsManaged(path) {
		return Worktree{}, &Error{Kind: NotManaged, Branch: branch, Path: path}
	}
	return Worktree{Path: path, Branch: branch}, nil
}

// Current returns the managed worktree containing dir.
func (s *Store) Current(ctx context.Context, dir string) (Worktree, error) {
	if !s.placement.IsManaged(dir) {
		return Worktree{}, &Error{Kind: NotManaged}
	}

	worktrees, err := s.git.ListWorktrees(ctx)
	if err != nil {
		return Worktree{}, &Error{Kind: ExternalCommandFailed, Op: "failed to list worktrees", Err: err}
	}

	target := resolvePath(dir)
	var best *git.Worktree
	for i := range worktrees {
		wt := &worktrees[i]
		if i == 0 || !s.placement.IsManaged(wt.Path) {
			continue
		}
		if !isWithin(resolvePath(wt.Path), target) {
			continue
		}
		if best == nil || len(wt.Path) > len(best.Path) {
			best = wt
		}
	}
	if best == nil {
		return Worktree{}, &Error{Kind: NotManaged}
	}
	return Worktree{Path: best.Path, Branch: best.Branch}, nil
}

// Remove force-removes the worktree at path. Uncommitted changes in it are
// lost; the branch is kept.
func (s *Store) Remove(ctx context.Context, path string) error {
	mainDir, err := s.git.MainDir(ctx)
	if err != nil {
		return &Error{Kind: ExternalCommandFailed, Op: "failed to locate main repository", Err: err}
	}
	if err := s.git.RemoveWorktree(ctx, mainDir, path); err != nil {
		return &Error{Kind: ExternalCommandFailed, Op: fmt.Sprintf("failed to remove worktree %s", path), Path: path, Err: err}
	}
	return nil
}

// RemoveBranch removes the managed worktree of branch.
func (s *Store) RemoveBranch(ctx context.Context, branch string) (Worktree, error) {
	wt, err := s.Resolve(ctx, branch)
	if err != nil {
		return Worktree{}, err
	}
	if err := s.Remove(ctx, wt.Path); err != nil {
		return Worktree{}, err
	}
	return wt, nil
}
