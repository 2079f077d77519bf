// Package worktree places, creates and removes treefrog's managed worktrees.
//
// Managed worktrees live under a single base directory, namespaced by
// repository name and then by sanitized branch name:
//
//	<base>/<repo>/<branch with "/" replaced by "-">
//
// The base defaults to "treefrog" under the symlink-resolved temp directory
// and can be overridden with TREEFROG_BASE or the worktree_base config key.
// A path is managed when it lies strictly under the base, compared on
// symlink-resolved paths.
//
// Sanitization is lossy: "a/b" and "a-b" map to the same directory. The
// second create fails with [AlreadyExists] rather than being disambiguated.
//
// Failures are reported as [*Error] values carrying a [Kind]; use
// [IsKind] to branch on them.
package worktree
