package notes

import (
	"sort"
	"strings"
)

// SelectionModel tracks which blocks are selected for multi-block
// operations. The anchor is the index of the last explicit click and
// seeds shift-click range selection.
type SelectionModel struct {
	selected map[int]struct{}
	anchor   int
	dragging bool
}

func NewSelectionModel() *SelectionModel {
	return &SelectionModel{selected: make(map[int]struct{}), anchor: -1}
}

// Click replaces the selection with the single block i.
func (s *SelectionModel) Click(i int) {
	s.selected = map[int]struct{}{i: {}}
	s.anchor = i
}

// ShiftClick selects the inclusive range between the anchor and i,
// leaving the anchor where it was. Without a prior anchor it behaves
// like a plain click.
func (s *SelectionModel) ShiftClick(i int) {
	if s.anchor < 0 {
		s.Click(i)
		return
	}
	lo, hi := s.anchor, i
	if lo > hi {
		lo, hi = hi, lo
	}
	s.selected = make(map[int]struct{}, hi-lo+1)
	for j := lo; j <= hi; j++ {
		s.selected[j] = struct{}{}
	}
}

// ToggleClick flips membership of block i and moves the anchor to it.
func (s *SelectionModel) ToggleClick(i int) {
	if _, ok := s.selected[i]; ok {
		delete(s.selected, i)
	} else {
		s.selected[i] = struct{}{}
	}
	s.anchor = i
}

// BeginDrag starts a drag selection at block i.
func (s *SelectionModel) BeginDrag(i int) {
	s.Click(i)
	s.dragging = true
}

// DragOver accumulates block i into an active drag selection.
func (s *SelectionModel) DragOver(i int) {
	if !s.dragging {
		return
	}
	s.selected[i] = struct{}{}
}

// EndDrag finishes an active drag selection.
func (s *SelectionModel) EndDrag() {
	s.dragging = false
}

// Dragging reports whether a drag selection is in progress.
func (s *SelectionModel) Dragging() bool {
	return s.dragging
}

// Selected reports whether block i is in the selection.
func (s *SelectionModel) Selected(i int) bool {
	_, ok := s.selected[i]
	return ok
}

// Count returns the number of selected blocks.
func (s *SelectionModel) Count() int {
	return len(s.selected)
}

// Indices returns the selected block indices in ascending order.
func (s *SelectionModel) Indices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// JoinText returns the text of the selected blocks, ascending by index,
// joined with newlines. This is the payload handed to the clipboard.
func (s *SelectionModel) JoinText(blocks []string) string {
	parts := make([]string, 0, len(s.selected))
	for _, i := range s.Indices() {
		if i >= 0 && i < len(blocks) {
			parts = append(parts, blocks[i])
		}
	}
	return strings.Join(parts, "\n")
}

// Apply re-keys the selection through a structural remap; selected
// blocks that were removed drop out. The anchor follows its block, or
// resets when that block is gone.
func (s *SelectionModel) Apply(remap Remap) {
	next := make(map[int]struct{}, len(s.selected))
	for i := range s.selected {
		if ni, ok := remap[i]; ok && ni != Removed {
			next[ni] = struct{}{}
		}
	}
	s.selected = next
	if s.anchor >= 0 {
		if na, ok := remap[s.anchor]; ok && na != Removed {
			s.anchor = na
		} else {
			s.anchor = -1
		}
	}
}

// Clear empties the selection and resets the anchor.
func (s *SelectionModel) Clear() {
	s.selected = make(map[int]struct{})
	s.anchor = -1
	s.dragging = false
}
