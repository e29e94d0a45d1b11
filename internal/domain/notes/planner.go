package notes

import "sort"

// PlanInsertion computes the physical index at which a block requested
// for absolute time t should be inserted.
//
// The annotated blocks are ordered by timestamp and scanned from the end
// for the last entry earlier than t; the insertion point is just after
// that entry's physical index. When every annotated block is at or after
// t the new block goes to the front; when nothing is annotated it goes
// to the end. The result is always within [0, blockCount].
//
// Timestamps are not required to increase with block index (manual edits
// can reorder them); the sorted scan is applied to whatever is there.
func PlanInsertion(t int64, times map[int]int64, blockCount int) int {
	type stamped struct {
		index int
		ms    int64
	}
	entries := make([]stamped, 0, len(times))
	for i, ms := range times {
		entries = append(entries, stamped{index: i, ms: ms})
	}
	if len(entries) == 0 {
		return blockCount
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].ms != entries[b].ms {
			return entries[a].ms < entries[b].ms
		}
		return entries[a].index < entries[b].index
	})

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ms < t {
			at := entries[i].index + 1
			if at > blockCount {
				at = blockCount
			}
			return at
		}
	}
	return 0
}
