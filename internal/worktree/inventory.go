package worktree

import (
	"context"

	"github.com/raphi011/treefrog/internal/git"
)

// Lister lists a repository's worktrees.
type Lister interface {
	ListWorktrees(ctx context.Context) ([]git.Worktree, error)
}

// Inventory returns the repository's managed worktrees in git's order.
func Inventory(ctx context.Context, g Lister, p Placement) ([]Worktree, error) {
	all, err := g.ListWorktrees(ctx)
	if err != nil {
		return nil, &Error{Kind: ExternalCommandFailed, Op: "failed to list worktrees", Err: err}
	}

	managed := make([]Worktree, 0, len(all))
	for _, wt := range all {
		if wt.Bare || !p.IsManaged(wt.Path) {
			continue
		}
		managed = append(managed, Worktree{Path: wt.Path, Branch: wt.Branch})
	}
	return managed, nil
}

// Inventory lists the store's managed worktrees.
func (s *Store) Inventory(ctx context.Context) ([]Worktree, error) {
	return Inventory(ctx, s.git, s.placement)
}
