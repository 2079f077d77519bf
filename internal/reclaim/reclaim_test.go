package reclaim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/treefrog/internal/git"
	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/worktree"
)

const (
	mainDir = "/src/app"
	wtDir   = "/tmp/treefrog/app/feature"
	tag     = "treefrog-checkout:feature:1:abcdef01"
	commit  = "c0ffee42"
)

var (
	errLocked    = errors.New("fatal: cannot remove a locked working tree")
	errOverwrite = errors.New("error: Your local changes would be overwritten by checkout")
	errConflict  = errors.New("CONFLICT (content): Merge conflict in README.md")
)

// fakeGit scripts a repository with one linked worktree for "feature".
type fakeGit struct {
	worktrees map[string]string // branch -> path
	dirty     bool
	stashes   []git.StashEntry
	active    string
	calls     []string

	hasChangesErr error
	pushErr       error
	listStashErr  error
	loseStash     bool
	removeErr     error
	checkoutErr   error
	applyErr      error
	dropErr       error
}

func newFake(dirty bool) *fakeGit {
	return &fakeGit{
		worktrees: map[string]string{"main": mainDir, "feature": wtDir},
		dirty:     dirty,
		active:    "main",
	}
}

func (f *fakeGit) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGit) MainDir(ctx context.Context) (string, error) {
	return mainDir, nil
}

func (f *fakeGit) FindWorktreeByBranch(ctx context.Context, branch string) (string, bool, error) {
	path, ok := f.worktrees[branch]
	return path, ok, nil
}

func (f *fakeGit) HasChanges(ctx context.Context, dir string) (bool, error) {
	f.record("status %s", dir)
	return f.dirty, f.hasChangesErr
}

func (f *fakeGit) StashPush(ctx context.Context, dir, message string) error {
	f.record("stash push %s", dir)
	if f.pushErr != nil {
		return f.pushErr
	}
	if !f.loseStash {
		f.stashes = append([]git.StashEntry{{Ref: "stash@{0}", Commit: commit, Subject: "On feature: " + message}}, f.stashes...)
		for i := range f.stashes {
			f.stashes[i].Ref = fmt.Sprintf("stash@{%d}", i)
		}
	}
	f.dirty = false
	return nil
}

func (f *fakeGit) ListStashes(ctx context.Context, dir string) ([]git.StashEntry, error) {
	f.record("stash list %s", dir)
	return f.stashes, f.listStashErr
}

func (f *fakeGit) RemoveWorktree(ctx context.Context, main, path string) error {
	f.record("worktree remove %s", path)
	if f.removeErr != nil {
		return f.removeErr
	}
	for b, p := range f.worktrees {
		if p == path {
			delete(f.worktrees, b)
		}
	}
	return nil
}

func (f *fakeGit) Checkout(ctx context.Context, dir, branch string) error {
	f.record("checkout %s %s", dir, branch)
	if f.checkoutErr != nil {
		return f.checkoutErr
	}
	f.active = branch
	return nil
}

func (f *fakeGit) StashApply(ctx context.Context, dir, ref string) error {
	f.record("stash apply %s %s", dir, ref)
	return f.applyErr
}

func (f *fakeGit) StashDrop(ctx context.Context, dir, ref string) error {
	f.record("stash drop %s %s", dir, ref)
	if f.dropErr != nil {
		return f.dropErr
	}
	f.stashes = slices.DeleteFunc(f.stashes, func(e git.StashEntry) bool { return e.Ref == ref })
	return nil
}

type harness struct {
	fake *fakeGit
	r    *Reclaimer
	dirs []string
	logs *bytes.Buffer
	ctx  context.Context
}

func newHarness(f *fakeGit) *harness {
	h := &harness{fake: f, logs: &bytes.Buffer{}}
	h.ctx = log.WithLogger(context.Background(), log.New(h.logs, false, false))
	h.r = New(f,
		WithChdir(func(dir string) error {
			h.dirs = append(h.dirs, dir)
			f.record("chdir %s", dir)
			return nil
		}),
		WithTag(func(string) string { return tag }),
	)
	return h
}

func TestReclaim_CleanWorktree(t *testing.T) {
	t.Parallel()

	h := newHarness(newFake(false))
	res, err := h.r.Reclaim(h.ctx, "feature")
	if err != nil {
		t.Fatalf("Reclaim: %v", err)
	}

	want := Result{Branch: "feature", WorktreePath: wtDir, MainDir: mainDir}
	if res != want {
		t.Errorf("Result = %+v, want %+v", res, want)
	}
	wantCalls := []string{
		"status " + wtDir,
		"chdir " + mainDir,
		"worktree remove " + wtDir,
		"checkout " + mainDir + " feature",
	}
	if !slices.Equal(h.fake.calls, wantCalls) {
		t.Errorf("calls =\n  %v\nwant\n  %v", h.fake.calls, wantCalls)
	}
	if h.fake.active != "feature" {
		t.Errorf("active branch = %q, want feature", h.fake.active)
	}
}

func TestReclaim_DirtyWorktreeRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFake(true)
	f.stashes = []git.StashEntry{{Ref: "stash@{0}", Subject: "On main: someone else's work"}}
	h := newHarness(f)

	res, err := h.r.Reclaim(h.ctx, "feature")
	if err != nil {
		t.Fatalf("Reclaim: %v", err)
	}
	if !res.Stashed || !res.Dropped || res.StashRef != "stash@{0}" || res.StashCommit != commit {
		t.Errorf("Result = %+v, want stashed and dropped stash@{0}", res)
	}

	wantCalls := []string{
		"status " + wtDir,
		"stash push " + wtDir,
		"stash list " + mainDir,
		"chdir " + mainDir,
		"worktree remove " + wtDir,
		"checkout " + mainDir + " feature",
		"stash apply " + mainDir + " stash@{0}",
		"stash drop " + mainDir + " stash@{0}",
	}
	if !slices.Equal(f.calls, wantCalls) {
		t.Errorf("calls =\n  %v\nwant\n  %v", f.calls, wantCalls)
	}
	if len(f.stashes) != 1 || f.stashes[0].Subject != "On main: someone else's work" {
		t.Errorf("unrelated stash should be left alone, stash list = %+v", f.stashes)
	}
	if !strings.Contains(h.logs.String(), "Saved worktree changes in stash@{0}") {
		t.Errorf("log = %q", h.logs.String())
	}
}

func TestReclaim_LocateFailures(t *testing.T) {
	t.Parallel()

	h := newHarness(newFake(true))
	if _, err := h.r.Reclaim(h.ctx, "missing"); !worktree.IsKind(err, worktree.NotFound) {
		t.Errorf("missing branch error = %v, want NotFound", err)
	}
	if _, err := h.r.Reclaim(h.ctx, "main"); !worktree.IsKind(err, worktree.CannotReclaimMainRepo) {
		t.Errorf("main branch error = %v, want CannotReclaimMainRepo", err)
	}
	if len(h.fake.calls) != 0 {
		t.Errorf("locate failures must not touch the repository, calls = %v", h.fake.calls)
	}
}

func TestReclaim_StatusErrorAborts(t *testing.T) {
	t.Parallel()

	f := newFake(false)
	f.hasChangesErr = errors.New("fatal: index file corrupt")
	h := newHarness(f)

	_, err := h.r.Reclaim(h.ctx, "feature")
	if !worktree.IsKind(err, worktree.ExternalCommandFailed) {
		t.Fatalf("error = %v, want ExternalCommandFailed", err)
	}
	if len(h.dirs) != 0 || slices.Contains(f.calls, "worktree remove "+wtDir) {
		t.Errorf("status failure must not proceed, calls = %v", f.calls)
	}
}

func TestReclaim_StashLocateFailed(t *testing.T) {
	t.Parallel()

	for name, setup := range map[string]func(*fakeGit){
		"stash not listed": func(f *fakeGit) { f.loseStash = true },
		"list fails":       func(f *fakeGit) { f.listStashErr = errors.New("fatal: bad revision") },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFake(true)
			setup(f)
			h := newHarness(f)

			_, err := h.r.Reclaim(h.ctx, "feature")
			if !worktree.IsKind(err, worktree.StashLocateFailed) {
				t.Fatalf("error = %v, want StashLocateFailed", err)
			}
			if len(h.dirs) != 0 {
				t.Error("must not pivot after failing to locate the stash")
			}
			if _, ok := f.worktrees["feature"]; !ok {
				t.Error("worktree must survive a stash locate failure")
			}
		})
	}
}

func TestReclaim_RecoverableFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(*fakeGit)
		kind       worktree.Kind
		prefix     string
		branchLive bool
	}{
		{
			name:   "destroy",
			setup:  func(f *fakeGit) { f.removeErr = errLocked },
			kind:   worktree.DestroyFailedStashPreserved,
			prefix: "Checkout did not complete, but your changes were preserved in stash",
		},
		{
			name:   "activate",
			setup:  func(f *fakeGit) { f.checkoutErr = errOverwrite },
			kind:   worktree.ActivateFailedStashPreserved,
			prefix: "Checkout did not complete, but your changes were preserved in stash",
		},
		{
			name:       "restore",
			setup:      func(f *fakeGit) { f.applyErr = errConflict },
			kind:       worktree.RestoreFailedBranchActive,
			prefix:     "Checked out branch, but failed to restore stashed changes automatically",
			branchLive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFake(true)
			tt.setup(f)
			h := newHarness(f)

			_, err := h.r.Reclaim(h.ctx, "feature")
			if !worktree.IsKind(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}

			msg := err.Error()
			if !strings.HasPrefix(msg, tt.prefix+".") {
				t.Errorf("message %q should start with %q", msg, tt.prefix)
			}
			if !strings.Contains(msg, "Run 'git stash apply --index stash@{0}' in "+mainDir+" to recover.") {
				t.Errorf("message %q lacks recovery command", msg)
			}
			if !strings.Contains(msg, "\nStash commit: "+commit+"\n") {
				t.Errorf("message %q lacks the stash commit", msg)
			}
			if !strings.Contains(msg, "\nOriginal error: ") {
				t.Errorf("message %q lacks original error", msg)
			}

			var werr *worktree.Error
			if !errors.As(err, &werr) || werr.RecoveryCommand() != "git stash apply --index stash@{0}" {
				t.Errorf("RecoveryCommand() mismatch for %v", err)
			}
			if len(f.stashes) != 1 {
				t.Errorf("stash must survive, stash list = %+v", f.stashes)
			}
			if slices.ContainsFunc(f.calls, func(c string) bool { return strings.HasPrefix(c, "stash drop") }) {
				t.Error("stash must not be dropped after a failure")
			}
			if (f.active == "feature") != tt.branchLive {
				t.Errorf("active branch = %q, branch live = %v", f.active, tt.branchLive)
			}
		})
	}
}

func TestReclaim_FailuresWithoutStashAreNotRecoverable(t *testing.T) {
	t.Parallel()

	f := newFake(false)
	f.checkoutErr = errors.New("error: pathspec did not match")
	h := newHarness(f)

	_, err := h.r.Reclaim(h.ctx, "feature")
	if !worktree.IsKind(err, worktree.ExternalCommandFailed) {
		t.Fatalf("error = %v, want ExternalCommandFailed", err)
	}
	if strings.Contains(err.Error(), "git stash apply") {
		t.Errorf("clean checkout failure should not mention a stash: %q", err.Error())
	}
}

func TestReclaim_PivotFailurePreservesStash(t *testing.T) {
	t.Parallel()

	f := newFake(true)
	r := New(f,
		WithChdir(func(string) error { return errors.New("permission denied") }),
		WithTag(func(string) string { return tag }),
	)

	_, err := r.Reclaim(context.Background(), "feature")
	if !worktree.IsKind(err, worktree.DestroyFailedStashPreserved) {
		t.Fatalf("error = %v, want DestroyFailedStashPreserved", err)
	}
	if _, ok := f.worktrees["feature"]; !ok {
		t.Error("worktree must not be removed when the pivot fails")
	}
}

func TestReclaim_DropFailureIsOnlyLogged(t *testing.T) {
	t.Parallel()

	f := newFake(true)
	f.dropErr = errors.New("error: unable to drop")
	h := newHarness(f)

	res, err := h.r.Reclaim(h.ctx, "feature")
	if err != nil {
		t.Fatalf("drop failure should not fail the checkout: %v", err)
	}
	if !res.Stashed || res.Dropped {
		t.Errorf("Result = %+v, want stashed but not dropped", res)
	}
	if !strings.Contains(h.logs.String(), "Warning: changes restored, but failed to drop stash@{0}") {
		t.Errorf("log = %q, want drop warning", h.logs.String())
	}
}

func TestNewTag(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	a := NewTag("feature/x", now)
	b := NewTag("feature/x", now)

	re := regexp.MustCompile(`^treefrog-checkout:feature/x:1700000000123:[0-9a-f]{8}$`)
	if !re.MatchString(a) {
		t.Errorf("NewTag() = %q, want %s", a, re)
	}
	if a == b {
		t.Errorf("two tags at the same instant collided: %q", a)
	}
}
