//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/config"
	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/worktree"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGit runs git in dir and returns trimmed stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, dir), name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGit(t, repoPath, "init", "-b", "main")
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(repoPath, "README.md"), "# "+name+"\n")
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// testEnv is a repository plus a managed base directory, with the package
// working directory pointed at the repository.
type testEnv struct {
	repo string
	base string
	cfg  config.Config
	log  bytes.Buffer
	out  bytes.Buffer
}

// newTestEnv creates the repository and points TREEFROG_BASE at a fresh
// directory. Not safe for parallel tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmp := resolvePath(t, t.TempDir())
	env := &testEnv{
		repo: setupTestRepo(t, tmp, "app"),
		base: filepath.Join(tmp, "base"),
		cfg:  config.Default(),
	}
	t.Setenv(worktree.BaseEnv, env.base)
	t.Setenv(config.PathEnv, filepath.Join(tmp, "no-config.toml"))
	env.chdir(t, env.repo)
	return env
}

// chdir points the commands at dir.
func (e *testEnv) chdir(t *testing.T, dir string) {
	t.Helper()
	old := workDir
	workDir = dir
	t.Cleanup(func() { workDir = old })
}

func (e *testEnv) context() context.Context {
	ctx := log.WithLogger(context.Background(), log.New(&e.log, false, false))
	ctx = output.WithPrinter(ctx, &e.out)
	return config.WithConfig(ctx, &e.cfg)
}

// worktreePath returns where branch is placed for the test repository.
func (e *testEnv) worktreePath(branch string) string {
	return filepath.Join(e.base, "app", worktree.Sanitize(branch))
}

// run executes a subcommand built by newCmd with args.
func (e *testEnv) run(t *testing.T, newCmd func() *cobra.Command, args ...string) error {
	t.Helper()
	cmd := newCmd()
	cmd.SetContext(e.context())
	cmd.SetArgs(args)
	cmd.SetOut(&e.out)
	cmd.SetErr(&e.log)
	return cmd.Execute()
}

// restoreCwd returns the process to its current directory when the test
// ends. Commands that remove the worktree they run from change directory.
func restoreCwd(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}
