package git

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

const branchRefPrefix = "refs/heads/"

// Worktree is one record of "git worktree list --porcelain".
type Worktree struct {
	Path     string
	Head     string
	Branch   string // short name, empty when detached or bare
	Detached bool
	Bare     bool
	Locked   bool
	Prunable bool
}

// ParseWorktreeList parses the output of "git worktree list --porcelain".
//
// Records are separated by blank lines and start with a "worktree <path>"
// line. Order is preserved; git always lists the main worktree first.
// Unknown attribute lines are ignored so newer git versions keep working.
func ParseWorktreeList(data []byte) ([]Worktree, error) {
	var (
		worktrees []Worktree
		current   *Worktree
	)

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		if key == "worktree" {
			flush()
			current = &Worktree{Path: value}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("malformed worktree list: line %d %q before any worktree entry", lineNo, line)
		}

		switch key {
		case "HEAD":
			current.Head = value
		case "branch":
			current.Branch = strings.TrimPrefix(value, branchRefPrefix)
		case "detached":
			current.Detached = true
		case "bare":
			current.Bare = true
		case "locked":
			current.Locked = true
		case "prunable":
			current.Prunable = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read worktree list: %w", err)
	}
	flush()

	return worktrees, nil
}
