package domsync

import "fmt"

// MapResult is a position translated through one or more edits, plus
// whether it fell inside content those edits removed.
type MapResult struct {
	Pos     int
	Deleted bool
}

// StepMap records the ranges touched by a single edit as triples of
// (start, old size, new size), sorted by start.
type StepMap struct {
	ranges []int
}

// NewStepMap builds a step map from (start, oldSize, newSize) triples.
func NewStepMap(ranges ...int) *StepMap {
	if len(ranges)%3 != 0 {
		panic(fmt.Sprintf("domsync: step map needs position triples, got %d values", len(ranges)))
	}
	return &StepMap{ranges: ranges}
}

// Map translates a position through the edit. assoc decides which side
// the position sticks to when it sits exactly at a replaced range's edge:
// negative keeps it before inserted content, non-negative after.
func (m *StepMap) Map(pos, assoc int) MapResult {
	diff := 0
	for i := 0; i < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if start > pos {
			break
		}
		oldSize, newSize := m.ranges[i+1], m.ranges[i+2]
		end := start + oldSize
		if pos <= end {
			var side int
			switch {
			case oldSize == 0:
				side = assoc
			case pos == start:
				side = -1
			case pos == end:
				side = 1
			default:
				side = assoc
			}
			result := start + diff
			if side >= 0 {
				result += newSize
			}
			deleted := pos != end
			if assoc < 0 {
				deleted = pos != start
			}
			return MapResult{Pos: result, Deleted: deleted && oldSize > 0}
		}
		diff += newSize - oldSize
	}
	return MapResult{Pos: pos + diff}
}

// Mapping is the ordered list of step maps accumulated over a batch. It is
// append-only while the batch lives; the reconciler only reads it.
type Mapping []*StepMap

// Map composes a position through every map in order. Deleted is true if
// the position fell inside content removed by any step along the way.
func (ms Mapping) Map(pos, assoc int) MapResult {
	deleted := false
	for _, m := range ms {
		r := m.Map(pos, assoc)
		pos = r.Pos
		if r.Deleted {
			deleted = true
		}
	}
	return MapResult{Pos: pos, Deleted: deleted}
}
