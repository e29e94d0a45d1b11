package notes

import (
	"reflect"
	"testing"
)

func TestClickReplacesSelection(t *testing.T) {
	s := NewSelectionModel()
	s.Click(2)
	s.Click(4)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("Indices = %v, want [4]", got)
	}
}

func TestShiftClickSelectsRangeFromAnchor(t *testing.T) {
	s := NewSelectionModel()
	s.Click(3)
	s.ShiftClick(6)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{3, 4, 5, 6}) {
		t.Fatalf("Indices = %v, want [3 4 5 6]", got)
	}

	// Anchor is unchanged by shift-click: a second range re-seeds from 3.
	s.ShiftClick(1)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Indices = %v, want [1 2 3]", got)
	}
}

func TestShiftClickWithoutAnchor(t *testing.T) {
	s := NewSelectionModel()
	s.ShiftClick(2)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("Indices = %v, want [2]", got)
	}
}

func TestToggleClick(t *testing.T) {
	s := NewSelectionModel()
	s.Click(1)
	s.ToggleClick(3)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("Indices = %v, want [1 3]", got)
	}
	s.ToggleClick(1)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("Indices = %v, want [3]", got)
	}
	// Toggle moved the anchor: shift-click now ranges from 1.
	s.ShiftClick(2)
	if got := s.Indices(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Indices = %v, want [1 2]", got)
	}
}

func TestDragAccumulates(t *testing.T) {
	s := NewSelectionModel()
	s.BeginDrag(2)
	s.DragOver(3)
	s.DragOver(4)
	s.DragOver(3)
	s.EndDrag()
	if got := s.Indices(); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Fatalf("Indices = %v, want [2 3 4]", got)
	}
	s.DragOver(9)
	if s.Selected(9) {
		t.Error("DragOver after EndDrag should be ignored")
	}
}

func TestJoinTextAscendingWithNewlines(t *testing.T) {
	blocks := []string{"zero", "one", "two", "three"}
	s := NewSelectionModel()
	s.Click(3)
	s.ToggleClick(1)
	if got := s.JoinText(blocks); got != "one\nthree" {
		t.Fatalf("JoinText = %q, want %q", got, "one\nthree")
	}
}

func TestSelectionApplyRemap(t *testing.T) {
	s := NewSelectionModel()
	s.Click(1)
	s.ToggleClick(3)
	s.Apply(Remap{0: 0, 1: Removed, 2: 1, 3: 2})
	if got := s.Indices(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("Indices = %v, want [2]", got)
	}
}
