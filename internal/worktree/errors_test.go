package worktree

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Messages(t *testing.T) {
	t.Parallel()

	cause := errors.New("error: Your local changes would be overwritten by checkout")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"not in repo", &Error{Kind: NotInRepository}, "Not in a git repository"},
		{"not found", &Error{Kind: NotFound, Branch: "feat"}, "No worktree found for branch 'feat'"},
		{"not managed cwd", &Error{Kind: NotManaged}, "This command must be run from within a treefrog worktree"},
		{"not managed path", &Error{Kind: NotManaged, Path: "/src/x"}, "'/src/x' does not appear to be a treefrog worktree"},
		{"main repo", &Error{Kind: CannotReclaimMainRepo}, "Cannot checkout the main repository"},
		{"exists", &Error{Kind: AlreadyExists, Path: "/tmp/treefrog/app/a-b"}, "Worktree directory already exists: /tmp/treefrog/app/a-b"},
		{
			"activate failed",
			&Error{Kind: ActivateFailedStashPreserved, StashRef: "stash@{0}", MainDir: "/src/app", Err: cause},
			"Checkout did not complete, but your changes were preserved in stash. " +
				"Run 'git stash apply --index stash@{0}' in /src/app to recover.\n" +
				"Original error: error: Your local changes would be overwritten by checkout",
		},
		{
			"restore failed",
			&Error{Kind: RestoreFailedBranchActive, StashRef: "stash@{1}", Err: cause},
			"Checked out branch, but failed to restore stashed changes automatically. " +
				"Run 'git stash apply --index stash@{1}' to recover.\n" +
				"Original error: error: Your local changes would be overwritten by checkout",
		},
		{
			"destroy failed with commit",
			&Error{Kind: DestroyFailedStashPreserved, StashRef: "stash@{0}", Commit: "3f2a9c1d", MainDir: "/src/app", Err: cause},
			"Checkout did not complete, but your changes were preserved in stash. " +
				"Run 'git stash apply --index stash@{0}' in /src/app to recover.\n" +
				"Stash commit: 3f2a9c1d\n" +
				"Original error: error: Your local changes would be overwritten by checkout",
		},
		{"external", &Error{Kind: ExternalCommandFailed, Op: "failed to list worktrees", Err: cause}, "failed to list worktrees: " + cause.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestError_RecoveryCommand(t *testing.T) {
	t.Parallel()

	e := &Error{Kind: DestroyFailedStashPreserved, StashRef: "stash@{2}"}
	if got := e.RecoveryCommand(); got != "git stash apply --index stash@{2}" {
		t.Errorf("RecoveryCommand() = %q", got)
	}
	if !strings.Contains(e.Error(), e.RecoveryCommand()) {
		t.Error("message should contain the recovery command")
	}
	if (&Error{Kind: NotFound}).RecoveryCommand() != "" {
		t.Error("no stash, no recovery command")
	}
	if (&Error{Kind: StashLocateFailed, StashRef: "stash@{0}"}).RecoveryCommand() != "" {
		t.Error("only recoverable kinds name a recovery command")
	}
}

func TestIsKind(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := fmt.Errorf("checkout: %w", &Error{Kind: StashLocateFailed, Err: cause})

	if !IsKind(err, StashLocateFailed) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, NotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
	if IsKind(cause, ExternalCommandFailed) {
		t.Error("plain errors have no kind")
	}
}

func TestKind_Recoverable(t *testing.T) {
	t.Parallel()

	for k := range kindNames {
		want := k == DestroyFailedStashPreserved || k == ActivateFailedStashPreserved || k == RestoreFailedBranchActive
		if got := k.Recoverable(); got != want {
			t.Errorf("%v.Recoverable() = %v, want %v", k, got, want)
		}
	}
}
