package domsync

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStepMapMap(t *testing.T) {
	tests := []struct {
		name  string
		m     *StepMap
		pos   int
		assoc int
		want  MapResult
	}{
		{"before an insertion", NewStepMap(2, 0, 3), 1, 1, MapResult{Pos: 1}},
		{"at insertion point, stick left", NewStepMap(2, 0, 3), 2, -1, MapResult{Pos: 2}},
		{"at insertion point, stick right", NewStepMap(2, 0, 3), 2, 1, MapResult{Pos: 5}},
		{"after an insertion", NewStepMap(2, 0, 3), 3, 1, MapResult{Pos: 6}},
		{"inside a deletion", NewStepMap(2, 3, 0), 3, 1, MapResult{Pos: 2, Deleted: true}},
		{"at deletion start, stick left", NewStepMap(2, 3, 0), 2, -1, MapResult{Pos: 2}},
		{"at deletion end, stick right", NewStepMap(2, 3, 0), 5, 1, MapResult{Pos: 2}},
		{"after a deletion", NewStepMap(2, 3, 0), 6, 1, MapResult{Pos: 3}},
		{"inside a replacement, stick right", NewStepMap(2, 2, 5), 3, 1, MapResult{Pos: 7, Deleted: true}},
		{"inside a replacement, stick left", NewStepMap(2, 2, 5), 3, -1, MapResult{Pos: 2, Deleted: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Map(tt.pos, tt.assoc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("map result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStepMapRejectsPartialTriples(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a non-triple range list")
		}
	}()
	NewStepMap(1, 2)
}

func TestMappingComposesInOrder(t *testing.T) {
	ms := Mapping{NewStepMap(0, 0, 3), NewStepMap(0, 0, 2)}
	got := ms.Map(2, 1)
	if diff := cmp.Diff(MapResult{Pos: 7}, got); diff != "" {
		t.Errorf("composed map mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingPropagatesDeleted(t *testing.T) {
	// The first step deletes the content around the position; later steps
	// must not clear the flag.
	ms := Mapping{NewStepMap(1, 4, 0), NewStepMap(0, 0, 2)}
	got := ms.Map(2, 1)
	want := MapResult{Pos: 3, Deleted: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("composed map mismatch (-want +got):\n%s", diff)
	}
}
