package domsync

import (
	"testing"
)

func TestParseRegionInline(t *testing.T) {
	schema := DefaultSchema()
	context := para()

	tests := []struct {
		name string
		html string
		want *Fragment
	}{
		{
			name: "plain text",
			html: "<p>hello</p>",
			want: NewFragment([]*Node{txt("hello")}),
		},
		{
			name: "marks from formatting tags",
			html: "<p>ab<b>cd</b>ef</p>",
			want: NewFragment([]*Node{txt("ab"), txt("cd", "strong"), txt("ef")}),
		},
		{
			name: "nested marks accumulate",
			html: "<p><b><i>x</i></b></p>",
			want: NewFragment([]*Node{txt("x", "strong", "em")}),
		},
		{
			name: "unknown inline wrapper is transparent and text merges",
			html: "<p>a<span>b</span>c</p>",
			want: NewFragment([]*Node{txt("abc")}),
		},
		{
			name: "raw whitespace is preserved",
			html: "<p>a  b </p>",
			want: NewFragment([]*Node{txt("a  b ")}),
		},
		{
			name: "adjacent equal-mark runs merge",
			html: "<p><b>ab</b><strong>cd</strong></p>",
			want: NewFragment([]*Node{txt("abcd", "strong")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := viewFromHTML(t, tt.html)
			viewP := view.FirstChild
			got := parseRegion(viewP, 0, childCount(viewP), context, schema)
			if !got.Eq(tt.want) {
				t.Errorf("parsed fragment mismatch:\ngot  %s\nwant %s", fragString(got), fragString(tt.want))
			}
		})
	}
}

func TestParseRegionBlocks(t *testing.T) {
	schema := DefaultSchema()
	context := doc()

	view := viewFromHTML(t, "<p>ab</p><h1>cd</h1><pre>e  f</pre>")
	got := parseRegion(view, 0, childCount(view), context, schema)
	want := NewFragment([]*Node{
		para(txt("ab")),
		NewNode("heading", txt("cd")),
		NewNode("code_block", txt("e  f")),
	})
	if !got.Eq(want) {
		t.Errorf("parsed fragment mismatch:\ngot  %s\nwant %s", fragString(got), fragString(want))
	}
}

func TestParseRegionUnknownBlockFallsBack(t *testing.T) {
	schema := DefaultSchema()
	view := viewFromHTML(t, "<section>ab</section>")
	got := parseRegion(view, 0, 1, doc(), schema)
	want := NewFragment([]*Node{para(txt("ab"))})
	if !got.Eq(want) {
		t.Errorf("parsed fragment mismatch:\ngot  %s\nwant %s", fragString(got), fragString(want))
	}
}

func TestParseRegionIndexBounds(t *testing.T) {
	schema := DefaultSchema()
	view := viewFromHTML(t, "<p>a</p><p>b</p><p>c</p>")
	got := parseRegion(view, 1, 2, doc(), schema)
	want := NewFragment([]*Node{para(txt("b"))})
	if !got.Eq(want) {
		t.Errorf("parsed fragment mismatch:\ngot  %s\nwant %s", fragString(got), fragString(want))
	}
}

func TestRegionInViewDescends(t *testing.T) {
	schema := DefaultSchema()
	d := doc(para(txt("ab")), para(txt("cdef")))
	view := viewFromHTML(t, "<p>ab</p><p>cdXef</p>")

	// Range inside the second paragraph's content.
	got := regionInView(view, d, 5, 9, schema)
	if got.Parent != d.Children.Child(1) {
		t.Fatalf("expected descent into the second paragraph, got parent %q", got.Parent.Type)
	}
	if got.From != 5 || got.To != 9 {
		t.Errorf("snapped range [%d,%d], want [5,9]", got.From, got.To)
	}
	if got.StartIndex != 0 || got.EndIndex != 1 {
		t.Errorf("view child range [%d,%d), want [0,1)", got.StartIndex, got.EndIndex)
	}
	if !got.Expected.Eq(NewFragment([]*Node{txt("cdef")})) {
		t.Errorf("expected fragment mismatch: %s", fragString(got.Expected))
	}
}

func TestRegionInViewWidensOnDrift(t *testing.T) {
	// The view split the only paragraph in two; the region must stay at
	// the document level and cover both view children.
	schema := DefaultSchema()
	d := doc(para(txt("abcd")))
	view := viewFromHTML(t, "<p>ab</p><p>cd</p>")

	got := regionInView(view, d, 1, 5, schema)
	if got.Parent != d {
		t.Fatalf("expected region at document level, got parent %q", got.Parent.Type)
	}
	if got.From != 0 || got.To != 6 {
		t.Errorf("snapped range [%d,%d], want [0,6]", got.From, got.To)
	}
	if got.StartIndex != 0 || got.EndIndex != 2 {
		t.Errorf("view child range [%d,%d), want [0,2)", got.StartIndex, got.EndIndex)
	}
}

func TestRegionInViewDeletedBlock(t *testing.T) {
	// A block disappeared from the view; the view child range for the
	// region must come out empty.
	schema := DefaultSchema()
	d := doc(para(txt("ab")), para(txt("cd")), para(txt("ef")))
	view := viewFromHTML(t, "<p>ab</p><p>ef</p>")

	got := regionInView(view, d, 4, 8, schema)
	if got.Parent != d {
		t.Fatalf("expected region at document level, got parent %q", got.Parent.Type)
	}
	if got.StartIndex != 1 || got.EndIndex != 1 {
		t.Errorf("view child range [%d,%d), want [1,1)", got.StartIndex, got.EndIndex)
	}
	if !got.Expected.Eq(NewFragment([]*Node{para(txt("cd"))})) {
		t.Errorf("expected fragment mismatch: %s", fragString(got.Expected))
	}
}

// fragString renders a fragment for failure messages.
func fragString(f *Fragment) string {
	out := ""
	for i := 0; i < f.ChildCount(); i++ {
		c := f.Child(i)
		if c.IsText() {
			out += "text(" + c.Text
			for _, m := range c.Marks {
				out += " " + string(m)
			}
			out += ")"
			continue
		}
		out += c.Type + "[" + fragString(c.Children) + "]"
	}
	return out
}
