// Package git is treefrog's handle on a git repository.
//
// Nearly every operation shells out to the git CLI through a [cmd.Runner],
// so user configuration (hooks, attributes, credential helpers) applies as
// usual and tests can script the runner. The one exception is the local
// branch probe, which reads refs with go-git and falls back to
// "git show-ref" when go-git cannot open the repository.
//
// # Repository state
//
// A [Repo] carries no cached state. [Repo.ListWorktrees] runs
// "git worktree list --porcelain" on every call because lifecycle operations
// change the worktree set between steps.
//
//   - [Open]: verify a directory is inside a repository
//   - [Repo.MainDir]: top-level of the main worktree, from any linked worktree
//   - [Repo.FindWorktreeByBranch]: the worktree a local branch is checked out in
//   - [Repo.AddWorktree], [Repo.RemoveWorktree]: worktree lifecycle
//
// # Stashes
//
// Stashes are shared by all worktrees of a repository. A stash pushed from a
// linked worktree is located again through [Repo.ListStashes] and
// [FindStash] by the unique message it was created with.
package git
