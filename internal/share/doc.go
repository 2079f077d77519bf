// Package share places files from the main repository into a worktree.
//
// Link symlinks entries so the worktree sees live changes made in the main
// repository (typical for .env files). Copy duplicates them so the worktree
// can diverge (typical for node_modules or build caches).
package share
