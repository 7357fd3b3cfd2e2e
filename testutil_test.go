package domsync

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document builders for tests.

func doc(children ...*Node) *Node { return NewNode("doc", children...) }

func para(children ...*Node) *Node { return NewNode("paragraph", children...) }

func txt(s string, marks ...Mark) *Node { return NewText(s, marks...) }

// viewFromHTML parses an HTML fragment into a detached container whose
// children act as the platform view tree for a document.
func viewFromHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		t.Fatalf("failed to parse view HTML %q: %v", src, err)
	}
	root := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

type insertCall struct {
	From, To int
	Text     string
}

type replaceCall struct {
	From, To int
	Slice    *Slice
	Scroll   bool
}

// fakeHost records every action the reconciler dispatches.
type fakeHost struct {
	splits   int
	inserts  []insertCall
	replaces []replaceCall
	dirty    []Range
	allDirty int
	sel      *Selection
}

func (h *fakeHost) DispatchSplit() { h.splits++ }

func (h *fakeHost) InsertText(from, to int, text string, sel SelectionRecovery) {
	h.inserts = append(h.inserts, insertCall{From: from, To: to, Text: text})
	if sel != nil {
		sel()
	}
}

func (h *fakeHost) ApplyReplacement(from, to int, slice *Slice, sel SelectionRecovery, scroll bool) {
	h.replaces = append(h.replaces, replaceCall{From: from, To: to, Slice: slice, Scroll: scroll})
	if sel != nil {
		sel()
	}
}

func (h *fakeHost) ResolveSelection(hint int) *Selection { return h.sel }

func (h *fakeHost) MarkDirty(from, to int) {
	h.dirty = append(h.dirty, Range{From: from, To: to})
}

func (h *fakeHost) MarkAllDirty() { h.allDirty++ }

func (h *fakeHost) actionCount() int {
	return h.splits + len(h.inserts) + len(h.replaces)
}
