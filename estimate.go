package domsync

// estimateRange guesses the smallest model range guaranteed to contain an
// out-of-band view change, seeded by the batch-start selection.
//
// A selection that sits strictly inside a single textblock's content gets
// the narrow composition estimate. Anything else walks up the shared
// ancestor chain until the range can be anchored on full nodes: the range
// becomes the enclosing children of the ancestor, extended by one sibling
// on any side the selection touches.
func estimateRange(doc *Node, sel Selection, schema *Schema) Range {
	rf := Resolve(doc, sel.From())
	rt := Resolve(doc, sel.To())

	if rf.Parent() == rt.Parent() && schema.IsTextblock(rf.Parent().Type) &&
		rf.ParentOffset() > 0 && rt.ParentOffset() < rt.Parent().ContentSize() {
		return estimateCompositionRange(doc, sel, 0, schema)
	}

	depth := rf.SharedDepth(rt.Pos)
	for depth > 0 && (rf.Pos == rf.Start(depth) || rt.Pos == rf.End(depth)) {
		depth--
	}

	anc := rf.NodeAt(depth)
	fromIdx := rf.Index(depth)
	from := rf.posBeforeIndex(depth, fromIdx)
	toIdx := rt.Index(depth)
	to := rf.posBeforeIndex(depth, toIdx)
	if toIdx < anc.Children.ChildCount() && rt.Pos > to {
		to += anc.Children.Child(toIdx).NodeSize()
	}

	// When an endpoint touches the edge of its own parent, pull in the
	// neighboring sibling so the re-parse always sees one full unchanged
	// node on that side.
	if rf.ParentOffset() == 0 && fromIdx > 0 {
		from = rf.posBeforeIndex(depth, fromIdx-1)
	}
	if rt.ParentOffset() == rt.Parent().ContentSize() {
		after := toIdx
		if rt.Pos > rf.posBeforeIndex(depth, toIdx) {
			after++
		}
		if after < anc.Children.ChildCount() {
			to = rf.posBeforeIndex(depth, after) + anc.Children.Child(after).NodeSize()
		}
	}

	return Range{From: from, To: to}
}

// estimateCompositionRange returns a narrow range around the composition
// caret: the enclosing text run, expanded outward one sibling when an end
// sits on a run boundary, widened first by the given symmetric margin in
// content-stream units.
func estimateCompositionRange(doc *Node, sel Selection, margin int, schema *Schema) Range {
	rf := Resolve(doc, sel.From())
	rt := Resolve(doc, sel.To())
	if rf.Parent() != rt.Parent() {
		return estimateRange(doc, sel, schema)
	}

	parent := rf.Parent()
	size := parent.ContentSize()
	startOff := maxInt(0, rf.ParentOffset()-margin)
	endOff := minInt(size, rt.ParentOffset()+margin)

	if startOff > 0 {
		_, _, off := parent.Children.childBefore(startOff)
		startOff = off
	}
	if endOff < size {
		after, _, off := parent.Children.childAfter(endOff)
		endOff = off + after.NodeSize()
	}

	base := rf.Start(rf.Depth())
	return Range{From: base + startOff, To: base + endOff}
}
