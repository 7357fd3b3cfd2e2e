package domsync

import "strings"

// ChangeKind tags the shape a reconciled view change is replayed as.
type ChangeKind uint8

const (
	// SplitBlock indicates the platform split a block in two, typically
	// a paragraph-break keystroke handled natively.
	SplitBlock ChangeKind = iota

	// UniformText indicates a substitution of inline text with one
	// consistent mark set.
	UniformText

	// ReplaceContent is the fallback: an arbitrary content replacement.
	ReplaceContent
)

// String returns a human-readable representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case SplitBlock:
		return "split-block"
	case UniformText:
		return "uniform-text"
	case ReplaceContent:
		return "replace-content"
	default:
		return "unknown"
	}
}

// Change is a classified view change, carrying exactly the fields its
// replay action needs. From and To are positions in the current model,
// already mapped through the batch's earlier edits.
type Change struct {
	Kind  ChangeKind
	From  int
	To    int
	Text  string
	Marks []Mark
	Slice *Slice
}

// classifyChange decides how a changed span is replayed. parsed is the
// freshly parsed region wrapped in a node of the region parent's type;
// start and end are the span's boundaries resolved within it. The three
// cases are tested in priority order: a structural split has semantics a
// content replacement would lose, and a uniform text run replays as a
// plain text insertion.
func classifyChange(parsed *Node, start, end *ResolvedPos, schema *Schema, from, to int) Change {
	if start.Parent() != end.Parent() &&
		end.Pos < parsed.ContentSize() &&
		findCursorForward(parsed, start.Pos+1, schema) == end.Pos {
		return Change{Kind: SplitBlock, From: from, To: to}
	}

	if start.Parent() == end.Parent() && schema.IsTextblock(start.Parent().Type) {
		if text, marks, ok := uniformText(start.Parent(), start.ParentOffset(), end.ParentOffset()); ok {
			return Change{Kind: UniformText, From: from, To: to, Text: text, Marks: marks}
		}
	}

	return Change{
		Kind:  ReplaceContent,
		From:  from,
		To:    to,
		Slice: SliceBetween(parsed, start.Pos, end.Pos),
	}
}

// findCursorForward returns the nearest position at or after pos where a
// cursor can sit (inside a textblock), or -1 when there is none.
func findCursorForward(doc *Node, pos int, schema *Schema) int {
	for p := pos; p <= doc.ContentSize(); p++ {
		if schema.IsTextblock(Resolve(doc, p).Parent().Type) {
			return p
		}
	}
	return -1
}

// uniformText walks the inline content of parent between two offsets and,
// when it consists solely of text nodes sharing one mark set, returns the
// concatenated text. Mixed marks or non-text content report false and the
// caller falls through to a generic replacement.
func uniformText(parent *Node, from, to int) (string, []Mark, bool) {
	var sb strings.Builder
	var marks []Mark
	first := true
	pos := 0
	for i := 0; i < parent.Children.ChildCount() && pos < to; i++ {
		child := parent.Children.Child(i)
		end := pos + child.NodeSize()
		if end <= from {
			pos = end
			continue
		}
		if !child.IsText() {
			return "", nil, false
		}
		if first {
			marks = child.Marks
			first = false
		} else if !sameMarks(marks, child.Marks) {
			return "", nil, false
		}
		runes := []rune(child.Text)
		lo := maxInt(0, from-pos)
		hi := minInt(len(runes), to-pos)
		sb.WriteString(string(runes[lo:hi]))
		pos = end
	}
	return sb.String(), marks, true
}
