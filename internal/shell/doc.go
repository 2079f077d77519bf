// Package shell starts an interactive subshell inside a worktree.
//
// The subshell inherits the terminal and the process environment, plus
// TREEFROG_SUBSHELL=1 and a prompt banner naming the branch. zsh ignores an
// exported PS1 once its rc files run, so for zsh a temporary ZDOTDIR is
// created whose .zshrc sources the user's one and installs a precmd hook
// that re-applies the banner.
package shell
