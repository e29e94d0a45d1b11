package notes

import "time"

// DefaultHistoryLimit caps the number of retained snapshots.
const DefaultHistoryLimit = 50

// DefaultDebounce is how long typing must be idle before a checkpoint
// fires.
const DefaultDebounce = 1000 * time.Millisecond

// Snapshot is an immutable copy of the full editable state.
type Snapshot struct {
	Blocks   []string
	Times    map[int]int64
	Speakers map[int]string
}

// HistoryStack implements linear snapshot undo/redo.
//
// Structural edits push the pre-mutation state synchronously; free
// typing schedules a debounced checkpoint instead, which the host loop
// flushes via FlushDebounced once the deadline passes. The debounce
// deadline is a single explicit value: rescheduling replaces it, so at
// most one checkpoint is ever pending.
type HistoryStack struct {
	entries []Snapshot
	cursor  int
	limit   int

	debounce time.Duration
	deadline time.Time
}

func NewHistoryStack(limit int, debounce time.Duration) *HistoryStack {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &HistoryStack{limit: limit, debounce: debounce}
}

// Len returns the number of stored snapshots.
func (h *HistoryStack) Len() int {
	return len(h.entries)
}

// Push stores a snapshot as the new most-recent entry. Entries ahead of
// the cursor (undone states) are discarded first. A snapshot whose block
// sequence matches the most recent stored one is rejected. Overflow past
// the limit drops the oldest entry. Reports whether the snapshot was
// stored.
func (h *HistoryStack) Push(snap Snapshot) bool {
	if h.cursor < len(h.entries) {
		h.entries = h.entries[:h.cursor+1]
	}
	if n := len(h.entries); n > 0 && blocksEqual(h.entries[n-1].Blocks, snap.Blocks) {
		h.cursor = len(h.entries)
		return false
	}
	h.entries = append(h.entries, snap)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries)
	return true
}

// Undo steps the cursor back one position and returns the snapshot to
// restore. The caller passes the live state so the first undo can park
// it as the redo target. Parking compares the full snapshot, not just
// the block sequence: an annotation-only edit leaves blocks identical
// to the last stored entry but still needs its live state parked, or
// undo would step one snapshot too far and redo would lose it.
func (h *HistoryStack) Undo(current Snapshot) (Snapshot, bool) {
	if h.cursor == len(h.entries) {
		if len(h.entries) == 0 {
			return Snapshot{}, false
		}
		if snapshotEqual(h.entries[len(h.entries)-1], current) {
			h.cursor = len(h.entries) - 1
		} else {
			h.entries = append(h.entries, current)
		}
	}
	if h.cursor == 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps the cursor forward and returns the snapshot to restore.
func (h *HistoryStack) Redo() (Snapshot, bool) {
	if h.cursor+1 >= len(h.entries) {
		return Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// ScheduleDebounced arms (or re-arms) the typing checkpoint to fire
// after the debounce interval. Rescheduling replaces the pending
// deadline rather than queueing a second one.
func (h *HistoryStack) ScheduleDebounced(now time.Time) {
	h.deadline = now.Add(h.debounce)
}

// CancelDebounced drops any pending typing checkpoint.
func (h *HistoryStack) CancelDebounced() {
	h.deadline = time.Time{}
}

// DebouncedPending reports whether a typing checkpoint is armed.
func (h *HistoryStack) DebouncedPending() bool {
	return !h.deadline.IsZero()
}

// FlushDebounced pushes the snapshot if the armed deadline has passed.
func (h *HistoryStack) FlushDebounced(now time.Time, snap Snapshot) bool {
	if h.deadline.IsZero() || now.Before(h.deadline) {
		return false
	}
	h.deadline = time.Time{}
	return h.Push(snap)
}

// Reset drops all history and any pending checkpoint.
func (h *HistoryStack) Reset() {
	h.entries = nil
	h.cursor = 0
	h.deadline = time.Time{}
}

func blocksEqual(a, b []string) bool {
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

func snapshotEqual(a, b Snapshot) bool {
	return blocksEqual(a.Blocks, b.Blocks) &&
		mapsEqual(a.Times, b.Times) &&
		mapsEqual(a.Speakers, b.Speakers)
}

func mapsEqual[V comparable](a, b map[int]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
