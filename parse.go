package domsync

import (
	"strings"

	"golang.org/x/net/html"
)

// parseRegion converts the view children in [startIndex, endIndex) of
// viewNode into a model fragment. context is the model node the region's
// content belongs to; it decides whether unknown block-level elements are
// flattened or wrapped in the schema's default block. Whitespace is
// preserved exactly as the view holds it.
func parseRegion(viewNode *html.Node, startIndex, endIndex int, context *Node, schema *Schema) *Fragment {
	fb := &fragmentBuilder{schema: schema}
	inline := schema.IsTextblock(context.Type)
	i := 0
	for c := viewNode.FirstChild; c != nil && i < endIndex; c = c.NextSibling {
		if i >= startIndex {
			fb.add(c, nil, inline)
		}
		i++
	}
	return NewFragment(fb.nodes)
}

// fragmentBuilder accumulates parsed nodes, merging adjacent text with
// identical marks into single leaves.
type fragmentBuilder struct {
	schema *Schema
	nodes  []*Node
}

func (fb *fragmentBuilder) text(s string, marks []Mark) {
	if s == "" {
		return
	}
	if n := len(fb.nodes); n > 0 {
		last := fb.nodes[n-1]
		if last.IsText() && sameMarks(last.Marks, marks) {
			fb.nodes[n-1] = &Node{Type: TextType, Text: last.Text + s, Marks: last.Marks}
			return
		}
	}
	fb.nodes = append(fb.nodes, NewText(s, marks...))
}

func (fb *fragmentBuilder) add(n *html.Node, marks []Mark, inline bool) {
	switch n.Type {
	case html.TextNode:
		if inline {
			fb.text(n.Data, marks)
		} else if strings.TrimSpace(n.Data) != "" {
			// Loose text in block context gets a default block wrapper.
			fb.nodes = append(fb.nodes, NewNode(fb.schema.DefaultBlock(), NewText(n.Data, marks...)))
		}
	case html.ElementNode:
		if m, ok := fb.schema.MarkForTag(n.Data); ok {
			wrapped := appendMark(marks, m)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				fb.add(c, wrapped, inline)
			}
			return
		}
		if bt, ok := fb.schema.BlockType(n.Data); ok {
			fb.block(n, bt)
			return
		}
		if inline {
			// Unknown wrapper inside a textblock: transparent.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				fb.add(c, marks, inline)
			}
			return
		}
		// Unknown element in block context: treat as the default block.
		fb.block(n, fb.schema.DefaultBlock())
	}
	// Comments and doctypes carry no model content.
}

func (fb *fragmentBuilder) block(n *html.Node, typ string) {
	inner := &fragmentBuilder{schema: fb.schema}
	inline := fb.schema.IsTextblock(typ)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inner.add(c, nil, inline)
	}
	fb.nodes = append(fb.nodes, &Node{Type: typ, Children: NewFragment(inner.nodes)})
}

func appendMark(marks []Mark, m Mark) []Mark {
	for _, have := range marks {
		if have == m {
			return marks
		}
	}
	out := make([]Mark, len(marks), len(marks)+1)
	copy(out, marks)
	return append(out, m)
}

// viewRegion is a model range translated into view-tree terms: the view
// parent whose child range [StartIndex, EndIndex) covers it, the model
// parent supplying parse context, and the range snapped outward to full
// child boundaries of that parent. Expected is the model content the
// region held at batch start.
type viewRegion struct {
	ViewParent *html.Node
	StartIndex int
	EndIndex   int
	Parent     *Node
	From       int
	To         int
	Expected   *Fragment
}

// regionInView maps a model-coordinate range onto the view tree. It
// descends both trees in parallel while they still agree structurally;
// where the view has drifted (different child counts or tags) the region
// conservatively stays at the last depth that matched, so the estimate
// only ever widens. The view tree uses child-index offsets and the model
// uses content-stream positions; this is the single place the two
// coordinate spaces meet.
func regionInView(viewRoot *html.Node, doc *Node, from, to int, schema *Schema) viewRegion {
	parent, view, base := doc, viewRoot, 0
	for {
		idx, childStart := parent.Children.findIndex(from - base)
		if idx >= parent.Children.ChildCount() {
			break
		}
		child := parent.Children.Child(idx)
		contentStart := base + childStart + 1
		contentEnd := contentStart + child.ContentSize()
		if child.IsText() || from < contentStart || to > contentEnd {
			break
		}
		if childCount(view) != parent.Children.ChildCount() {
			break
		}
		viewChild := childAt(view, idx)
		if viewChild == nil || viewChild.Type != html.ElementNode {
			break
		}
		if bt, ok := schema.BlockType(viewChild.Data); !ok || bt != child.Type {
			break
		}
		parent, view, base = child, viewChild, contentStart
	}

	content := parent.Children
	startIdx, snapFrom := content.findIndex(from - base)
	endOff := to - base
	endIdx := content.ChildCount()
	snapTo := content.Size
	if endOff < content.Size {
		i, off := content.findIndex(endOff)
		if off == endOff {
			endIdx, snapTo = i, off
		} else {
			endIdx, snapTo = i+1, off+content.Child(i).NodeSize()
		}
	}

	// Children outside the snapped range are unchanged, so the leading
	// and trailing view children line up with the model one to one even
	// when the counts inside the range differ.
	viewEnd := childCount(view) - (content.ChildCount() - endIdx)
	if viewEnd < startIdx {
		viewEnd = startIdx
	}

	return viewRegion{
		ViewParent: view,
		StartIndex: startIdx,
		EndIndex:   viewEnd,
		Parent:     parent,
		From:       base + snapFrom,
		To:         base + snapTo,
		Expected:   content.Cut(snapFrom, snapTo),
	}
}
