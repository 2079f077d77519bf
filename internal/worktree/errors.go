package worktree

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies treefrog failures.
type Kind int

const (
	ExternalCommandFailed Kind = iota
	NotInRepository
	NotFound
	NotManaged
	CannotReclaimMainRepo
	AlreadyExists
	CreationFailed
	StashLocateFailed
	DestroyFailedStashPreserved
	ActivateFailedStashPreserved
	RestoreFailedBranchActive
)

var kindNames = map[Kind]string{
	ExternalCommandFailed:        "ExternalCommandFailed",
	NotInRepository:              "NotInRepository",
	NotFound:                     "NotFound",
	NotManaged:                   "NotManaged",
	CannotReclaimMainRepo:        "CannotReclaimMainRepo",
	AlreadyExists:                "AlreadyExists",
	CreationFailed:               "CreationFailed",
	StashLocateFailed:            "StashLocateFailed",
	DestroyFailedStashPreserved:  "DestroyFailedStashPreserved",
	ActivateFailedStashPreserved: "ActivateFailedStashPreserved",
	RestoreFailedBranchActive:    "RestoreFailedBranchActive",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Recoverable reports whether failures of this kind leave a stash behind
// that the user has to apply by hand.
func (k Kind) Recoverable() bool {
	switch k {
	case DestroyFailedStashPreserved, ActivateFailedStashPreserved, RestoreFailedBranchActive:
		return true
	}
	return false
}

// Error is a classified treefrog failure.
type Error struct {
	Kind     Kind
	Op       string // short description of the failed step
	Branch   string
	Path     string
	StashRef string
	Commit   string // commit of the preserved stash
	MainDir  string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotInRepository:
		return "Not in a git repository"
	case NotFound:
		return fmt.Sprintf("No worktree found for branch '%s'", e.Branch)
	case NotManaged:
		if e.Path == "" {
			return "This command must be run from within a treefrog worktree"
		}
		return fmt.Sprintf("'%s' does not appear to be a treefrog worktree", e.Path)
	case CannotReclaimMainRepo:
		return "Cannot checkout the main repository"
	case AlreadyExists:
		return fmt.Sprintf("Worktree directory already exists: %s", e.Path)
	case CreationFailed:
		return fmt.Sprintf("Failed to create worktree for branch '%s': %v", e.Branch, e.Err)
	case StashLocateFailed:
		return "Failed to locate stashed changes after stashing worktree"
	}
	if e.Kind.Recoverable() {
		return e.recoveryMessage(recoveryPrefix[e.Kind])
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprint(e.Err)
}

var recoveryPrefix = map[Kind]string{
	DestroyFailedStashPreserved:  "Checkout did not complete, but your changes were preserved in stash",
	ActivateFailedStashPreserved: "Checkout did not complete, but your changes were preserved in stash",
	RestoreFailedBranchActive:    "Checked out branch, but failed to restore stashed changes automatically",
}

func (e *Error) recoveryMessage(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	fmt.Fprintf(&b, ". Run '%s'", e.RecoveryCommand())
	if e.MainDir != "" {
		b.WriteString(" in " + e.MainDir)
	}
	b.WriteString(" to recover.")
	// The stash index shifts when anything else is stashed; the commit does not.
	if e.Commit != "" {
		fmt.Fprintf(&b, "\nStash commit: %s", e.Commit)
	}
	fmt.Fprintf(&b, "\nOriginal error: %v", e.Err)
	return b.String()
}

// RecoveryCommand returns the git command that restores the preserved
// stash, or "" when no stash is involved.
func (e *Error) RecoveryCommand() string {
	if !e.Kind.Recoverable() || e.StashRef == "" {
		return ""
	}
	return "git stash apply --index " + e.StashRef
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
