package git

import (
	"context"
	"fmt"
	"strings"
)

// StashEntry is one line of the repository stash list.
type StashEntry struct {
	Ref     string // stash@{N}
	Commit  string
	Subject string // "On <branch>: <message>"
}

// ParseStashList parses "git stash list --format=%gd%x09%H%x09%gs" output.
func ParseStashList(data []byte) []StashEntry {
	var entries []StashEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		ref, rest, _ := strings.Cut(line, "\t")
		commit, subject, _ := strings.Cut(rest, "\t")
		entries = append(entries, StashEntry{Ref: ref, Commit: commit, Subject: subject})
	}
	return entries
}

// FindStash returns the entry created with message.
func FindStash(entries []StashEntry, message string) (StashEntry, bool) {
	for _, e := range entries {
		if e.Subject == message || strings.HasSuffix(e.Subject, ": "+message) {
			return e, true
		}
	}
	return StashEntry{}, false
}

// StashPush stashes staged, modified and untracked changes of dir under
// message.
func (r *Repo) StashPush(ctx context.Context, dir, message string) error {
	if err := r.run(ctx, dir, "stash", "push", "--include-untracked", "-m", message); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// ListStashes returns the repository's stash list as seen from dir.
func (r *Repo) ListStashes(ctx context.Context, dir string) ([]StashEntry, error) {
	out, err := r.output(ctx, dir, "stash", "list", "--format=%gd%x09%H%x09%gs")
	if err != nil {
		return nil, fmt.Errorf("failed to list stashes: %w", err)
	}
	return ParseStashList(out), nil
}

// StashApply applies ref in dir, restoring the staged state.
func (r *Repo) StashApply(ctx context.Context, dir, ref string) error {
	return r.run(ctx, dir, "stash", "apply", "--index", ref)
}

// StashDrop removes ref from the stash list.
func (r *Repo) StashDrop(ctx context.Context, dir, ref string) error {
	return r.run(ctx, dir, "stash", "drop", ref)
}
