package notes

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultSeparator joins blocks in the persistence serialization.
const DefaultSeparator = "\n"

// PositionEntry is one element of the external position map: a rune
// offset into the serialized text paired with an absolute timestamp.
type PositionEntry struct {
	Offset int   `json:"offset"`
	TimeMs int64 `json:"time_ms"`
}

// SpeakerEntry pairs a block index with its speaker label for the
// persistence boundary.
type SpeakerEntry struct {
	Block   int    `json:"block"`
	Speaker string `json:"speaker"`
}

// blockStarts computes the rune offset at which each block begins in the
// serialized text. Encode and Decode both go through this function so the
// two directions can never disagree about separator accounting.
func blockStarts(blocks []string, sep string) []int {
	starts := make([]int, len(blocks))
	sepLen := utf8.RuneCountInString(sep)
	off := 0
	for i, b := range blocks {
		if i > 0 {
			off += sepLen
		}
		starts[i] = off
		off += utf8.RuneCountInString(b)
	}
	return starts
}

// EncodePositions converts the block-index-keyed timestamp map into the
// flat offset-keyed form used by persistence. It is a full recomputation
// on every call; nothing is patched incrementally. Entries come back
// sorted by offset.
func EncodePositions(blocks []string, times map[int]int64, sep string) []PositionEntry {
	starts := blockStarts(blocks, sep)
	entries := make([]PositionEntry, 0, len(times))
	for i, ms := range times {
		if i < 0 || i >= len(starts) {
			continue
		}
		entries = append(entries, PositionEntry{Offset: starts[i], TimeMs: ms})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Offset < entries[b].Offset })
	return entries
}

// DecodePositions splits the serialized text back into blocks and maps
// each external offset to the block starting at exactly that offset.
// Offsets with no exact block-start match are dropped; the count of
// dropped entries is returned for diagnostics. There is no nearest-match
// fallback.
func DecodePositions(text string, entries []PositionEntry, sep string) (blocks []string, times map[int]int64, dropped int) {
	blocks = strings.Split(text, sep)
	starts := blockStarts(blocks, sep)

	byStart := make(map[int]int, len(starts))
	for i, off := range starts {
		byStart[off] = i
	}

	times = make(map[int]int64, len(entries))
	for _, e := range entries {
		i, ok := byStart[e.Offset]
		if !ok {
			dropped++
			continue
		}
		times[i] = e.TimeMs
	}
	return blocks, times, dropped
}

// SerializeBlocks joins the block sequence with the separator. The
// inverse of the strings.Split performed by DecodePositions.
func SerializeBlocks(blocks []string, sep string) string {
	return strings.Join(blocks, sep)
}
