package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestLogger_QuietSuppressesOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, true)
	l.Printf("removing %s", "worktree")
	l.Println("branch preserved")
	l.Warnf("stash not dropped")
	l.Debug("checkout", "branch", "feature")
	l.Command("/tmp", "git", "status")(time.Millisecond)

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestLogger_Warnf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Warnf("could not drop %s\n", "stash@{0}")

	if got, want := buf.String(), "Warning: could not drop stash@{0}\n"; got != want {
		t.Errorf("Warnf output = %q, want %q", got, want)
	}
}

func TestLogger_Command(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		dir     string
		want    string
	}{
		{"with dir", true, "/repo", "[/repo] $ git worktree list --porcelain (20ms)\n"},
		{"without dir", true, "", "$ git worktree list --porcelain (20ms)\n"},
		{"not verbose", false, "/repo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, false)
			done := l.Command(tt.dir, "git", "worktree", "list", "--porcelain")
			done(20 * time.Millisecond)
			if got := buf.String(); got != tt.want {
				t.Errorf("Command output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_Debug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, false)
	l.Debug("stashed worktree", "ref", "stash@{0}", "dangling")

	got := buf.String()
	if !strings.HasPrefix(got, "stashed worktree ref=stash@{0}") {
		t.Errorf("Debug output = %q", got)
	}
	if strings.Contains(got, "dangling") {
		t.Errorf("Debug output = %q, should drop unpaired key", got)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	l := New(&bytes.Buffer{}, false, false)
	if got := FromContext(WithLogger(context.Background(), l)); got != l {
		t.Error("FromContext did not return the attached logger")
	}

	fallback := FromContext(context.Background())
	if fallback.Writer() != io.Discard {
		t.Error("fallback logger should write to io.Discard")
	}
	fallback.Printf("ignored")
}
