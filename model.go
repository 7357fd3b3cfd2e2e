package domsync

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextType is the node type of text leaves.
const TextType = "text"

// Mark is an inline formatting tag attached to a text node.
type Mark string

// sameMarks compares two ordered mark sets.
func sameMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Node is one node of the document model. Nodes are immutable after
// construction; every edit produces a new tree that shares unchanged
// subtrees with the old one.
type Node struct {
	Type     string
	Text     string
	Marks    []Mark
	Children *Fragment
}

// NewText creates a text leaf carrying the given marks.
func NewText(text string, marks ...Mark) *Node {
	return &Node{Type: TextType, Text: text, Marks: marks}
}

// NewNode creates an element node with the given children.
func NewNode(typ string, children ...*Node) *Node {
	return &Node{Type: typ, Children: NewFragment(children)}
}

// IsText reports whether the node is a text leaf.
func (n *Node) IsText() bool {
	return n.Type == TextType
}

// ContentSize is the size of the node's content, in content-stream units.
// Text nodes measure their content in runes.
func (n *Node) ContentSize() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Text)
	}
	if n.Children == nil {
		return 0
	}
	return n.Children.Size
}

// NodeSize is the total size the node occupies in its parent's content
// stream. Element nodes add two token positions for their boundaries.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return n.ContentSize()
	}
	return n.ContentSize() + 2
}

// SameMarkup reports whether two nodes have the same type and marks,
// ignoring their content.
func (n *Node) SameMarkup(other *Node) bool {
	return n.Type == other.Type && sameMarks(n.Marks, other.Marks)
}

// Copy returns a node with the same markup but different content.
func (n *Node) Copy(content *Fragment) *Node {
	return &Node{Type: n.Type, Marks: n.Marks, Children: content}
}

// cutText returns a text leaf holding the given rune range of n's text.
func (n *Node) cutText(from, to int) *Node {
	runes := []rune(n.Text)
	if from < 0 || to > len(runes) || from > to {
		panic(fmt.Sprintf("domsync: text cut [%d,%d] out of range for %q", from, to, n.Text))
	}
	return &Node{Type: TextType, Text: string(runes[from:to]), Marks: n.Marks}
}

// TextContent concatenates all text beneath the node.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	if n.Children != nil {
		for _, c := range n.Children.content {
			sb.WriteString(c.TextContent())
		}
	}
	return sb.String()
}

// Eq compares two nodes structurally, content included.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if !n.SameMarkup(other) || n.Text != other.Text {
		return false
	}
	return n.Children.Eq(other.Children)
}

// Fragment is a contiguous ordered sequence of sibling nodes. Positions
// within a fragment count from its own start.
type Fragment struct {
	content []*Node
	// Size is the total content-stream size of the fragment.
	Size int
}

var emptyFragment = &Fragment{}

// NewFragment builds a fragment from a node slice.
func NewFragment(nodes []*Node) *Fragment {
	if len(nodes) == 0 {
		return emptyFragment
	}
	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
	}
	return &Fragment{content: nodes, Size: size}
}

// ChildCount returns the number of direct children.
func (f *Fragment) ChildCount() int {
	if f == nil {
		return 0
	}
	return len(f.content)
}

// Child returns the child at the given index.
func (f *Fragment) Child(i int) *Node {
	if f == nil || i < 0 || i >= len(f.content) {
		panic(fmt.Sprintf("domsync: child index %d out of range", i))
	}
	return f.content[i]
}

// Eq compares two fragments structurally.
func (f *Fragment) Eq(other *Fragment) bool {
	if f.ChildCount() != other.ChildCount() {
		return false
	}
	for i := 0; i < f.ChildCount(); i++ {
		if !f.content[i].Eq(other.content[i]) {
			return false
		}
	}
	return true
}

// offsetAt returns the content-stream offset of the child at index i.
func (f *Fragment) offsetAt(i int) int {
	off := 0
	for j := 0; j < i; j++ {
		off += f.content[j].NodeSize()
	}
	return off
}

// findIndex locates the child addressed by a content offset. It returns
// the child index and the offset at which that child starts. An offset at
// a child boundary resolves to the child starting there; the fragment's
// total size resolves to (ChildCount, Size).
func (f *Fragment) findIndex(off int) (int, int) {
	if off < 0 || off > f.Size {
		panic(fmt.Sprintf("domsync: offset %d outside fragment of size %d", off, f.Size))
	}
	if off == f.Size {
		return f.ChildCount(), f.Size
	}
	cur := 0
	for i, child := range f.content {
		end := cur + child.NodeSize()
		if off < end {
			return i, cur
		}
		cur = end
	}
	return f.ChildCount(), f.Size
}

// childBefore returns the child touching the position from the left: the
// child containing off, or the child ending exactly at off. Returns a nil
// node when off is 0.
func (f *Fragment) childBefore(off int) (*Node, int, int) {
	pos := 0
	for i, child := range f.content {
		end := pos + child.NodeSize()
		if off > pos && off <= end {
			return child, i, pos
		}
		pos = end
	}
	return nil, -1, 0
}

// childAfter returns the child touching the position from the right: the
// child containing off, or the child starting exactly at off. Returns a
// nil node when off is the fragment size.
func (f *Fragment) childAfter(off int) (*Node, int, int) {
	pos := 0
	for i, child := range f.content {
		end := pos + child.NodeSize()
		if off >= pos && off < end {
			return child, i, pos
		}
		pos = end
	}
	return nil, -1, f.Size
}

// Cut returns the sub-fragment between two content offsets. Boundaries
// that fall inside a text node cut the text; boundaries inside an element
// keep the element with its content cut recursively.
func (f *Fragment) Cut(from, to int) *Fragment {
	if from == 0 && to == f.Size {
		return f
	}
	if from > to || from < 0 || to > f.Size {
		panic(fmt.Sprintf("domsync: cut [%d,%d] outside fragment of size %d", from, to, f.Size))
	}
	var result []*Node
	pos := 0
	for _, child := range f.content {
		if pos >= to {
			break
		}
		end := pos + child.NodeSize()
		if end > from {
			cut := child
			if pos < from || end > to {
				if child.IsText() {
					lo := maxInt(0, from-pos)
					hi := minInt(child.ContentSize(), to-pos)
					cut = child.cutText(lo, hi)
				} else {
					lo := maxInt(0, from-pos-1)
					hi := minInt(child.ContentSize(), to-pos-1)
					cut = child.Copy(child.Children.Cut(lo, hi))
				}
			}
			result = append(result, cut)
		}
		pos = end
	}
	return NewFragment(result)
}

// Slice is a fragment plus the depths to which its first and last nodes
// are open (cut through) on each side.
type Slice struct {
	Content   *Fragment
	OpenStart int
	OpenEnd   int
}

// SliceBetween cuts the content between two positions of a document out
// into a slice, recording how deeply each end cuts into the tree.
func SliceBetween(doc *Node, from, to int) *Slice {
	rf := Resolve(doc, from)
	rt := Resolve(doc, to)
	depth := rf.SharedDepth(to)
	start := rf.Start(depth)
	content := rf.NodeAt(depth).Children.Cut(from-start, to-start)
	return &Slice{
		Content:   content,
		OpenStart: rf.Depth() - depth,
		OpenEnd:   rt.Depth() - depth,
	}
}

// ResolvedPos is a position decorated with its ancestor path: the chain of
// nodes containing it, the child index at each depth, and the content
// start of each ancestor.
type ResolvedPos struct {
	Pos   int
	nodes []*Node
	index []int
	start []int
}

// Resolve computes the resolved form of a position within doc. Positions
// outside the document's content are a caller defect and panic.
func Resolve(doc *Node, pos int) *ResolvedPos {
	if pos < 0 || pos > doc.ContentSize() {
		panic(fmt.Sprintf("domsync: position %d outside document of size %d", pos, doc.ContentSize()))
	}
	r := &ResolvedPos{Pos: pos}
	node := doc
	start := 0
	for {
		r.nodes = append(r.nodes, node)
		r.start = append(r.start, start)
		offset := pos - start
		idx, childStart := node.Children.findIndex(offset)
		r.index = append(r.index, idx)
		if idx == node.Children.ChildCount() || offset == childStart {
			break
		}
		child := node.Children.Child(idx)
		if child.IsText() {
			break
		}
		node = child
		start = start + childStart + 1
	}
	return r
}

// Depth is the depth of the innermost node containing the position.
// The root is depth 0.
func (r *ResolvedPos) Depth() int {
	return len(r.nodes) - 1
}

// NodeAt returns the ancestor node at the given depth.
func (r *ResolvedPos) NodeAt(depth int) *Node {
	return r.nodes[depth]
}

// Index returns the child index the position points at within the
// ancestor at the given depth.
func (r *ResolvedPos) Index(depth int) int {
	return r.index[depth]
}

// Start returns the position at which the content of the ancestor at the
// given depth starts.
func (r *ResolvedPos) Start(depth int) int {
	return r.start[depth]
}

// End returns the position at which the content of the ancestor at the
// given depth ends.
func (r *ResolvedPos) End(depth int) int {
	return r.start[depth] + r.nodes[depth].ContentSize()
}

// Parent is the innermost node containing the position.
func (r *ResolvedPos) Parent() *Node {
	return r.nodes[r.Depth()]
}

// ParentOffset is the position's offset within its parent's content.
func (r *ResolvedPos) ParentOffset() int {
	return r.Pos - r.start[r.Depth()]
}

// SharedDepth returns the deepest depth at which this position's ancestor
// also contains the given position.
func (r *ResolvedPos) SharedDepth(pos int) int {
	for d := r.Depth(); d > 0; d-- {
		if r.Start(d) <= pos && pos <= r.End(d) {
			return d
		}
	}
	return 0
}

// posBeforeIndex returns the position of the boundary before child i of
// the ancestor at the given depth.
func (r *ResolvedPos) posBeforeIndex(depth, i int) int {
	return r.start[depth] + r.nodes[depth].Children.offsetAt(i)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
