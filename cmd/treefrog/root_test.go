package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	t.Parallel()

	if got := versionString(); !strings.HasPrefix(got, "treefrog dev (none, unknown, go") {
		t.Errorf("versionString() = %q", got)
	}
}

// Root command tests are not parallel: flags bind package-level variables.

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	for _, args := range [][]string{
		{"create"}, {"new"}, {"enter"}, {"remove"}, {"rm"}, {"list"}, {"ls"},
		{"checkout"}, {"spotlight"}, {"share"}, {"clone"}, {"path"}, {"completion"},
	} {
		cmd, _, err := root.Find(args)
		if err != nil || cmd == root {
			t.Errorf("command %q not registered: %v", args[0], err)
		}
	}

	spotlight, _, _ := root.Find([]string{"spotlight"})
	checkout, _, _ := root.Find([]string{"checkout"})
	if spotlight != checkout {
		t.Error("spotlight should be an alias of checkout")
	}
}

func TestRootCmd_VerboseQuietExclusive(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"-v", "-q", "completion", "bash"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { verbose, quiet = false, false })

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "verbose") {
		t.Errorf("error = %v, want mutually exclusive flags error", err)
	}
}

func TestCompletionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "zsh"})

	if err := root.Execute(); err != nil {
		t.Fatalf("completion zsh: %v", err)
	}
	if !strings.Contains(out.String(), "treefrog") {
		t.Error("completion script does not mention treefrog")
	}

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
