package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeWorktreeBranches completes branches that have a managed worktree.
func completeWorktreeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	rc, err := openRepo(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	managed, err := rc.store.Inventory(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, wt := range managed {
		if wt.Branch != "" && strings.HasPrefix(wt.Branch, toComplete) {
			matches = append(matches, wt.Branch)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
