package worktree

import "github.com/sahilm/fuzzy"

const maxSuggestions = 3

// Suggest returns up to three managed branch names that fuzzy-match query,
// best match first.
func Suggest(query string, worktrees []Worktree) []string {
	if query == "" {
		return nil
	}
	branches := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		if wt.Branch != "" && wt.Branch != query {
			branches = append(branches, wt.Branch)
		}
	}

	matches := fuzzy.Find(query, branches)
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
