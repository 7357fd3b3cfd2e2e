package domsync

// NodePath represents the traversal steps from the root to a target node.
// Example: [0, 1, 3] means root -> child[0] -> child[1] -> child[3]
type NodePath []int

// Range is a span in the document model's content-stream coordinates.
type Range struct {
	From int
	To   int
}

// Selection is the editor selection at the start of a batch, as a pair of
// content-stream positions. It is only ever used as a heuristic: the view
// tree may have drifted since it was recorded.
type Selection struct {
	Anchor int
	Head   int
}

// From returns the lower end of the selection.
func (s Selection) From() int {
	if s.Head < s.Anchor {
		return s.Head
	}
	return s.Anchor
}

// To returns the upper end of the selection.
func (s Selection) To() int {
	if s.Head > s.Anchor {
		return s.Head
	}
	return s.Anchor
}

// Collapsed reports whether the selection is a single caret.
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Head
}

// SelectionRecovery re-derives a selection from the view tree's focus state
// once an edit has been committed. It returns nil when the view does not
// have focus.
type SelectionRecovery func() *Selection
