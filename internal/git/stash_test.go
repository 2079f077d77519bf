package git

import (
	"reflect"
	"testing"
)

func TestParseStashList(t *testing.T) {
	t.Parallel()

	input := "stash@{0}\t9d1c0e\tOn feature/x: treefrog-checkout:feature/x:1700000000000:1a2b3c4d\n" +
		"stash@{1}\t44ab07\tWIP on main: 1234567 Initial commit\n" +
		"\n"
	want := []StashEntry{
		{Ref: "stash@{0}", Commit: "9d1c0e", Subject: "On feature/x: treefrog-checkout:feature/x:1700000000000:1a2b3c4d"},
		{Ref: "stash@{1}", Commit: "44ab07", Subject: "WIP on main: 1234567 Initial commit"},
	}

	if got := ParseStashList([]byte(input)); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseStashList() = %+v, want %+v", got, want)
	}
	if got := ParseStashList(nil); got != nil {
		t.Errorf("ParseStashList(nil) = %+v, want nil", got)
	}
}

func TestFindStash(t *testing.T) {
	t.Parallel()

	entries := []StashEntry{
		{Ref: "stash@{0}", Subject: "On main: unrelated"},
		{Ref: "stash@{1}", Subject: "On feature: treefrog-checkout:feature:1:abcd"},
		{Ref: "stash@{2}", Subject: "On (no branch): treefrog-checkout:detached:2:ef01"},
	}

	tests := []struct {
		message string
		wantRef string
		wantOK  bool
	}{
		{"treefrog-checkout:feature:1:abcd", "stash@{1}", true},
		{"treefrog-checkout:detached:2:ef01", "stash@{2}", true},
		{"treefrog-checkout:feature:1:abc", "", false},
		{"unrelated", "stash@{0}", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()
			e, ok := FindStash(entries, tt.message)
			ref := e.Ref
			if ref != tt.wantRef || ok != tt.wantOK {
				t.Errorf("FindStash(%q) = (%q, %v), want (%q, %v)", tt.message, ref, ok, tt.wantRef, tt.wantOK)
			}
		})
	}
}
