package notes

import "sort"

// Remap describes how block indices moved after a structural edit.
// Every index that existed before the edit has an entry; Removed marks
// blocks that no longer exist.
type Remap map[int]int

// Removed is the remap target for a deleted block.
const Removed = -1

// BlockStore owns the ordered sequence of note blocks. A block is plain
// text identified only by its position; the sequence is never empty.
type BlockStore struct {
	blocks []string
}

// NewBlockStore builds a store from an initial sequence. An empty or nil
// sequence yields a single empty block.
func NewBlockStore(blocks []string) *BlockStore {
	if len(blocks) == 0 {
		return &BlockStore{blocks: []string{""}}
	}
	return &BlockStore{blocks: append([]string(nil), blocks...)}
}

// Len returns the number of blocks.
func (s *BlockStore) Len() int {
	return len(s.blocks)
}

// Get returns the text of block i. Out-of-range indices return "".
func (s *BlockStore) Get(i int) string {
	if i < 0 || i >= len(s.blocks) {
		return ""
	}
	return s.blocks[i]
}

// Set replaces the text of block i. Used for free typing, which is not a
// structural edit and produces no remap.
func (s *BlockStore) Set(i int, text string) {
	if i < 0 || i >= len(s.blocks) {
		return
	}
	s.blocks[i] = text
}

// Blocks returns a copy of the block sequence.
func (s *BlockStore) Blocks() []string {
	return append([]string(nil), s.blocks...)
}

// Split divides block i at rune offset off into a leading and a trailing
// block. Offsets outside the block are clamped. The returned remap shifts
// every index after i up by one; block i itself keeps its index.
func (s *BlockStore) Split(i, off int) Remap {
	if i < 0 || i >= len(s.blocks) {
		return s.identity()
	}
	runes := []rune(s.blocks[i])
	if off < 0 {
		off = 0
	}
	if off > len(runes) {
		off = len(runes)
	}
	leading, trailing := string(runes[:off]), string(runes[off:])

	remap := make(Remap, len(s.blocks))
	for j := range s.blocks {
		if j <= i {
			remap[j] = j
		} else {
			remap[j] = j + 1
		}
	}

	s.blocks = append(s.blocks, "")
	copy(s.blocks[i+2:], s.blocks[i+1:])
	s.blocks[i] = leading
	s.blocks[i+1] = trailing
	return remap
}

// Merge concatenates block i onto block i-1 and removes block i. The
// removed index maps to Removed; higher indices shift down by one.
// Merging block 0 (no predecessor) is a no-op.
func (s *BlockStore) Merge(i int) (Remap, bool) {
	if i <= 0 || i >= len(s.blocks) {
		return s.identity(), false
	}
	remap := make(Remap, len(s.blocks))
	for j := range s.blocks {
		switch {
		case j < i:
			remap[j] = j
		case j == i:
			remap[j] = Removed
		default:
			remap[j] = j - 1
		}
	}
	s.blocks[i-1] += s.blocks[i]
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	return remap, true
}

// InsertEmpty inserts an empty block so that it occupies index i. Valid
// positions are [0, Len()]; out-of-range positions are clamped.
func (s *BlockStore) InsertEmpty(i int) Remap {
	if i < 0 {
		i = 0
	}
	if i > len(s.blocks) {
		i = len(s.blocks)
	}
	remap := make(Remap, len(s.blocks))
	for j := range s.blocks {
		if j < i {
			remap[j] = j
		} else {
			remap[j] = j + 1
		}
	}
	s.blocks = append(s.blocks, "")
	copy(s.blocks[i+1:], s.blocks[i:])
	s.blocks[i] = ""
	return remap
}

// DeleteIndices removes the given blocks in one logical operation,
// applied internally in descending index order. The sequence is never
// reduced below one block: once a single block remains, further
// deletions in the set are skipped.
func (s *BlockStore) DeleteIndices(indices []int) Remap {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	removed := make(map[int]bool, len(sorted))
	remaining := len(s.blocks)
	for _, i := range sorted {
		if i < 0 || i >= len(s.blocks) || removed[i] {
			continue
		}
		if remaining <= 1 {
			break
		}
		removed[i] = true
		remaining--
	}

	remap := make(Remap, len(s.blocks))
	kept := make([]string, 0, remaining)
	next := 0
	for j, text := range s.blocks {
		if removed[j] {
			remap[j] = Removed
			continue
		}
		remap[j] = next
		next++
		kept = append(kept, text)
	}
	s.blocks = kept
	return remap
}

func (s *BlockStore) identity() Remap {
	remap := make(Remap, len(s.blocks))
	for j := range s.blocks {
		remap[j] = j
	}
	return remap
}
