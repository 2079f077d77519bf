package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseEnv overrides the worktree base directory.
const BaseEnv = "TREEFROG_BASE"

// BaseDir returns the root of all managed worktrees: $TREEFROG_BASE when
// set, then the configured value, then "treefrog" under the resolved temp
// directory.
func BaseDir(getenv func(string) string, configured string) (string, error) {
	base := getenv(BaseEnv)
	if base == "" {
		base = configured
	}
	if base == "" {
		tmp := os.TempDir()
		if resolved, err := filepath.EvalSymlinks(tmp); err == nil {
			tmp = resolved
		}
		return filepath.Join(tmp, "treefrog"), nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("invalid worktree base %q: %w", base, err)
	}
	return abs, nil
}

// Sanitize maps a branch name to a directory name.
func Sanitize(branch string) string {
	return strings.ReplaceAll(branch, "/", "-")
}

// Placement computes worktree locations for one repository.
type Placement struct {
	Base string // managed root shared by all repositories
	Repo string // repository name
}

// RepoDir returns <base>/<repo>.
func (p Placement) RepoDir() string {
	return filepath.Join(p.Base, p.Repo)
}

// For returns the worktree directory of branch.
func (p Placement) For(branch string) string {
	return filepath.Join(p.RepoDir(), Sanitize(branch))
}

// IsManaged reports whether path lies strictly under the base directory.
// Both sides are compared symlink-resolved; paths that do not exist are
// resolved through their nearest existing ancestor.
func (p Placement) IsManaged(path string) bool {
	if p.Base == "" || path == "" {
		return false
	}
	return isStrictlyUnder(resolvePath(p.Base), resolvePath(path))
}

// isStrictlyUnder reports whether path is a descendant of dir.
func isStrictlyUnder(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isWithin reports whether path equals dir or lies under it.
func isWithin(dir, path string) bool {
	return dir == path || isStrictlyUnder(dir, path)
}

// resolvePath returns the absolute, symlink-free form of path. Missing
// trailing components are kept as is.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return abs
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs
		}
		missing = append([]string{filepath.Base(current)}, missing...)
		current = parent
	}
}
