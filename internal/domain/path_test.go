package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"score", []string{"score"}},
		{"settings/theme", []string{"settings", "theme"}},
		{"settings.theme", []string{"settings", "theme"}},
		{"/settings//theme/", []string{"settings", "theme"}},
		{"todos/0/title", []string{"todos", "0", "title"}},
		{"file/name.png", []string{"file", "name.png"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SplitPath(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitPath(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	if NormalizePath("settings.theme") != NormalizePath("settings/theme") {
		t.Error("expected dot and slash paths to share a normalized form")
	}
	if got := JoinPath("", "score"); got != "score" {
		t.Errorf("expected score, got %s", got)
	}
	if got := JoinPath("settings", "theme"); got != "settings/theme" {
		t.Errorf("expected settings/theme, got %s", got)
	}
}

func TestFlatten(t *testing.T) {
	graph := []*PropertyNode{
		{Name: "score", FullPath: "score", Kind: KindNumber},
		{Name: "settings", FullPath: "settings", Kind: KindViewModel, Children: []*PropertyNode{
			{Name: "theme", FullPath: "settings/theme", Kind: KindString},
		}},
	}

	var paths []string
	for _, n := range Flatten(graph) {
		paths = append(paths, n.FullPath)
	}
	want := []string{"score", "settings", "settings/theme"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertyNode_DetachIsRecursive(t *testing.T) {
	removed := 0
	child := &PropertyNode{Name: "theme"}
	child.Bind(func() { removed++ })
	parent := &PropertyNode{Name: "settings", Children: []*PropertyNode{child}}
	parent.Bind(func() { removed++ })

	parent.Detach()
	parent.Detach()

	if removed != 2 {
		t.Errorf("expected 2 removals, got %d", removed)
	}
	if child.Listening() || parent.Listening() {
		t.Error("expected no listeners after Detach")
	}
}

func TestPropertyNode_ChildMatchesItemName(t *testing.T) {
	list := &PropertyNode{Name: "todos", Kind: KindList, Children: []*PropertyNode{
		{Name: "0", IsItem: true, Index: 0, ItemName: "first"},
		{Name: "1", IsItem: true, Index: 1, ItemName: "second"},
	}}

	if n, ok := list.Child("1"); !ok || n.ItemName != "second" {
		t.Errorf("expected index lookup to find second, got %v", n)
	}
	if n, ok := list.Child("first"); !ok || n.Index != 0 {
		t.Errorf("expected item name lookup to find index 0, got %v", n)
	}
	if _, ok := list.Child("third"); ok {
		t.Error("expected no match for third")
	}
}
