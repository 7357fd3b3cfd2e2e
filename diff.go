package domsync

import (
	"github.com/golang/glog"
)

// DiffResult is the minimal changed span between two fragments. Start is
// the first position where they diverge; EndA and EndB are the positions
// before which they reconverge, in the expected and parsed fragment's
// coordinate space respectively. All three are absolute (the compared
// fragments share a coordinate space offset by their base position).
type DiffResult struct {
	Start int
	EndA  int
	EndB  int
}

// findDiffStart returns the first position where the two fragments have
// different content, comparing node by node, marks included, and rune by
// rune within text.
func findDiffStart(a, b *Fragment, pos int) (int, bool) {
	for i := 0; ; i++ {
		if i == a.ChildCount() || i == b.ChildCount() {
			if a.ChildCount() == b.ChildCount() {
				return 0, false
			}
			return pos, true
		}
		childA, childB := a.Child(i), b.Child(i)
		if childA == childB {
			pos += childA.NodeSize()
			continue
		}
		if !childA.SameMarkup(childB) {
			return pos, true
		}
		if childA.IsText() && childA.Text != childB.Text {
			ra, rb := []rune(childA.Text), []rune(childB.Text)
			for j := 0; j < len(ra) && j < len(rb) && ra[j] == rb[j]; j++ {
				pos++
			}
			return pos, true
		}
		if !childA.IsText() && (childA.ContentSize() > 0 || childB.ContentSize() > 0) {
			if inner, ok := findDiffStart(childA.Children, childB.Children, pos+1); ok {
				return inner, true
			}
		}
		pos += childA.NodeSize()
	}
}

// findDiffEnd scans the two fragments backward from their ends and returns
// the last position, in each fragment's space, where their content still
// differs.
func findDiffEnd(a, b *Fragment, posA, posB int) (int, int, bool) {
	ia, ib := a.ChildCount(), b.ChildCount()
	for {
		if ia == 0 || ib == 0 {
			if ia == ib {
				return 0, 0, false
			}
			return posA, posB, true
		}
		ia--
		ib--
		childA, childB := a.Child(ia), b.Child(ib)
		size := childA.NodeSize()
		if childA == childB {
			posA -= size
			posB -= size
			continue
		}
		if !childA.SameMarkup(childB) {
			return posA, posB, true
		}
		if childA.IsText() && childA.Text != childB.Text {
			ra, rb := []rune(childA.Text), []rune(childB.Text)
			same := 0
			for same < len(ra) && same < len(rb) && ra[len(ra)-same-1] == rb[len(rb)-same-1] {
				same++
				posA--
				posB--
			}
			return posA, posB, true
		}
		if !childA.IsText() && (childA.ContentSize() > 0 || childB.ContentSize() > 0) {
			if innerA, innerB, ok := findDiffEnd(childA.Children, childB.Children, posA-1, posB-1); ok {
				return innerA, innerB, true
			}
		}
		posA -= size
		posB -= size
	}
}

// diffFragments compares the expected fragment a against the parsed
// fragment b, both based at pos, and returns nil when they are identical.
//
// Greedy prefix/suffix matching is ambiguous for pure insertions and
// deletions inside runs of identical content, so when the two scans
// overlap the result is re-anchored on preferred, the caller's pre-edit
// cursor position, whenever it falls inside the collision window.
func diffFragments(a, b *Fragment, pos, preferred int) *DiffResult {
	start, ok := findDiffStart(a, b, pos)
	if !ok {
		return nil
	}
	endA, endB, ok := findDiffEnd(a, b, pos+a.Size, pos+b.Size)
	if !ok {
		// A diff start without a diff end means the fragments have equal
		// content, which contradicts the scan above.
		panic("domsync: diff start found but fragments have no diff end")
	}
	if preferred < pos || preferred > pos+maxInt(a.Size, b.Size) {
		// The hint predates edits this reconciliation never saw. Ignore
		// it rather than mis-anchor the change.
		glog.Warningf("[diff] preferred position %d outside compared range [%d,%d], ignoring", preferred, pos, pos+maxInt(a.Size, b.Size))
		preferred = -1
	}
	if endA < start && a.Size < b.Size {
		// Pure insertion into b.
		move := 0
		if preferred >= endA && preferred <= start {
			move = start - preferred
		}
		start -= move
		endB = start + (endB - endA)
		endA = start
	} else if endB < start {
		// Pure deletion from a.
		move := 0
		if preferred >= endB && preferred <= start {
			move = start - preferred
		}
		start -= move
		endA = start + (endA - endB)
		endB = start
	}
	return &DiffResult{Start: start, EndA: endA, EndB: endB}
}
