// Package reclaim moves a branch out of its worktree and back into the main
// repository ("checkout", also called "spotlight").
//
// The protocol runs strictly in order:
//
//  1. Locate the worktree of the branch. The main worktree is refused.
//  2. Stash the worktree's uncommitted changes (staged, modified and
//     untracked) under a unique message, then find that stash again in the
//     main repository's stash list. Stashes are repository-wide, so the
//     lookup runs against the main directory.
//  3. Change into the main repository.
//  4. Remove the worktree.
//  5. Check the branch out in the main repository.
//  6. Apply the stash with its index and drop it.
//
// After step 2 every failure names the stash and the command that restores
// it. A failed drop after a successful apply is only logged.
package reclaim
