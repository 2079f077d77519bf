// Package hooks runs the setup commands configured for a repository after a
// worktree has been created.
//
// # Placeholders
//
// Commands may reference the new worktree with placeholders. Values are
// shell-quoted before substitution:
//
//   - {path}: absolute worktree path
//   - {branch}: branch name
//   - {repo}: repository name (main worktree folder)
//   - {main-repo}: main worktree path
//
// # Execution
//
// Each command runs through "sh -c" with the worktree as its working
// directory. A failing command is reported and the remaining commands still
// run.
package hooks
