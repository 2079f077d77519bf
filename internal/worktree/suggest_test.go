package worktree

import (
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	worktrees := []Worktree{
		{Branch: "feature/login"},
		{Branch: "feature/logout"},
		{Branch: "bugfix/crash"},
		{Branch: ""},
	}

	got := Suggest("login", worktrees)
	if len(got) == 0 || got[0] != "feature/login" {
		t.Errorf("Suggest(login) = %v, want feature/login first", got)
	}
	if slices.Contains(got, "bugfix/crash") {
		t.Errorf("Suggest(login) = %v, should not include bugfix/crash", got)
	}
	if got := Suggest("zzz", worktrees); len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want none", got)
	}
	if got := Suggest("", worktrees); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}
}
