package reclaim

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/treefrog/internal/git"
	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/worktree"
)

// Git is the repository surface the protocol needs. *git.Repo implements it.
type Git interface {
	MainDir(ctx context.Context) (string, error)
	FindWorktreeByBranch(ctx context.Context, branch string) (string, bool, error)
	HasChanges(ctx context.Context, dir string) (bool, error)
	StashPush(ctx context.Context, dir, message string) error
	ListStashes(ctx context.Context, dir string) ([]git.StashEntry, error)
	RemoveWorktree(ctx context.Context, mainDir, path string) error
	Checkout(ctx context.Context, dir, branch string) error
	StashApply(ctx context.Context, dir, ref string) error
	StashDrop(ctx context.Context, dir, ref string) error
}

// Result describes a completed checkout.
type Result struct {
	Branch       string
	WorktreePath string
	MainDir      string
	StashRef     string // empty when the worktree was clean
	StashCommit  string
	Stashed      bool
	Dropped      bool // stash removed after being applied
}

// Reclaimer runs the checkout protocol.
type Reclaimer struct {
	git   Git
	chdir func(string) error
	tag   func(branch string) string
}

// Option configures a Reclaimer.
type Option func(*Reclaimer)

// WithChdir replaces os.Chdir for the pivot into the main repository.
func WithChdir(fn func(string) error) Option {
	return func(r *Reclaimer) { r.chdir = fn }
}

// WithTag replaces the stash message generator.
func WithTag(fn func(branch string) string) Option {
	return func(r *Reclaimer) { r.tag = fn }
}

// New returns a Reclaimer operating on g.
func New(g Git, opts ...Option) *Reclaimer {
	r := &Reclaimer{
		git:   g,
		chdir: os.Chdir,
		tag:   func(branch string) string { return NewTag(branch, time.Now()) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reclaim removes the worktree of branch and checks branch out in the main
// repository, carrying the worktree's uncommitted changes along.
func (r *Reclaimer) Reclaim(ctx context.Context, branch string) (Result, error) {
	l := log.FromContext(ctx)

	path, ok, err := r.git.FindWorktreeByBranch(ctx, branch)
	if err != nil {
		return Result{}, &worktree.Error{Kind: worktree.ExternalCommandFailed, Op: "failed to list worktrees", Branch: branch, Err: err}
	}
	if !ok {
		return Result{}, &worktree.Error{Kind: worktree.NotFound, Branch: branch}
	}

	mainDir, err := r.git.MainDir(ctx)
	if err != nil {
		return Result{}, &worktree.Error{Kind: worktree.ExternalCommandFailed, Op: "failed to locate main repository", Err: err}
	}
	if filepath.Clean(path) == filepath.Clean(mainDir) {
		return Result{}, &worktree.Error{Kind: worktree.CannotReclaimMainRepo, Branch: branch, Path: path}
	}

	l.Printf("Checking out branch: %s\n", branch)
	l.Printf("Worktree: %s\n", filepath.Base(path))

	res := Result{Branch: branch, WorktreePath: path, MainDir: mainDir}

	// Snapshot
	dirty, err := r.git.HasChanges(ctx, path)
	if err != nil {
		return Result{}, &worktree.Error{Kind: worktree.ExternalCommandFailed, Op: "failed to inspect worktree", Branch: branch, Path: path, Err: err}
	}
	if dirty {
		tag := r.tag(branch)
		l.Println("Uncommitted changes detected; stashing worktree changes...")
		if err := r.git.StashPush(ctx, path, tag); err != nil {
			return Result{}, &worktree.Error{Kind: worktree.ExternalCommandFailed, Op: "failed to stash worktree changes", Branch: branch, Path: path, Err: err}
		}

		entries, err := r.git.ListStashes(ctx, mainDir)
		if err != nil {
			return Result{}, &worktree.Error{Kind: worktree.StashLocateFailed, Branch: branch, Path: path, MainDir: mainDir, Err: err}
		}
		entry, found := git.FindStash(entries, tag)
		if !found {
			return Result{}, &worktree.Error{Kind: worktree.StashLocateFailed, Branch: branch, Path: path, MainDir: mainDir}
		}
		res.StashRef = entry.Ref
		res.StashCommit = entry.Commit
		res.Stashed = true
		l.Printf("Saved worktree changes in %s\n", entry.Ref)
	}

	// preserved builds the error for a failure that leaves the stash behind.
	preserved := func(kind worktree.Kind, op string, cause error) error {
		if !res.Stashed {
			return &worktree.Error{Kind: worktree.ExternalCommandFailed, Op: op, Branch: branch, Path: path, Err: cause}
		}
		return &worktree.Error{Kind: kind, Op: op, Branch: branch, Path: path, StashRef: res.StashRef, Commit: res.StashCommit, MainDir: mainDir, Err: cause}
	}

	// Pivot
	if err := r.chdir(mainDir); err != nil {
		return Result{}, preserved(worktree.DestroyFailedStashPreserved, "failed to change to main repository", err)
	}

	// Destroy
	l.Println("Removing worktree...")
	if err := r.git.RemoveWorktree(ctx, mainDir, path); err != nil {
		return Result{}, preserved(worktree.DestroyFailedStashPreserved, "failed to remove worktree", err)
	}

	// Activate
	l.Printf("Checking out branch '%s' in main repo...\n", branch)
	if err := r.git.Checkout(ctx, mainDir, branch); err != nil {
		return Result{}, preserved(worktree.ActivateFailedStashPreserved, "failed to check out branch", err)
	}

	// Restore
	if res.Stashed {
		l.Printf("Restoring stashed changes from %s...\n", res.StashRef)
		if err := r.git.StashApply(ctx, mainDir, res.StashRef); err != nil {
			return Result{}, &worktree.Error{
				Kind:     worktree.RestoreFailedBranchActive,
				Op:       "failed to apply stash",
				Branch:   branch,
				Path:     path,
				StashRef: res.StashRef,
				Commit:   res.StashCommit,
				MainDir:  mainDir,
				Err:      err,
			}
		}
		if err := r.git.StashDrop(ctx, mainDir, res.StashRef); err != nil {
			l.Warnf("changes restored, but failed to drop %s: %v", res.StashRef, err)
		} else {
			res.Dropped = true
		}
		l.Println("Restored uncommitted changes in main repository")
	}

	return res, nil
}
