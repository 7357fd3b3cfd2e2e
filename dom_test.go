package domsync

import (
	"testing"

	"golang.org/x/net/html"
)

func TestNodeAtAndPathTo(t *testing.T) {
	view := viewFromHTML(t, "<p>ab</p><p>c<b>d</b></p>")

	// Path to the <b> inside the second paragraph.
	path := NodePath{1, 1}
	got, err := NodeAt(view, path)
	if err != nil {
		t.Fatalf("NodeAt(%v): %v", path, err)
	}
	if got.Type != html.ElementNode || got.Data != "b" {
		t.Fatalf("NodeAt(%v) = %q node, want b element", path, got.Data)
	}

	back, err := PathTo(view, got)
	if err != nil {
		t.Fatalf("PathTo round trip: %v", err)
	}
	if len(back) != len(path) || back[0] != path[0] || back[1] != path[1] {
		t.Errorf("PathTo = %v, want %v", back, path)
	}
}

func TestNodeAtMissingChild(t *testing.T) {
	view := viewFromHTML(t, "<p>ab</p>")
	if _, err := NodeAt(view, NodePath{0, 5}); err == nil {
		t.Error("expected an error for a path past the child list")
	}
}

func TestPathToForeignNode(t *testing.T) {
	view := viewFromHTML(t, "<p>ab</p>")
	other := viewFromHTML(t, "<p>cd</p>")
	if _, err := PathTo(view, other.FirstChild); err == nil {
		t.Error("expected an error for a node outside the tree")
	}
}

func TestSelectionHelpers(t *testing.T) {
	s := Selection{Anchor: 5, Head: 2}
	if s.From() != 2 || s.To() != 5 {
		t.Errorf("From/To = %d/%d, want 2/5", s.From(), s.To())
	}
	if s.Collapsed() {
		t.Error("a ranged selection reported collapsed")
	}
	if !(Selection{Anchor: 3, Head: 3}).Collapsed() {
		t.Error("a caret selection reported not collapsed")
	}
}
