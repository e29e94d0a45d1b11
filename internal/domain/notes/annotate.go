package notes

// splitFallbackGapMs is added to a stamped block's timestamp when a split
// has no later annotated block to interpolate against.
const splitFallbackGapMs = 3000

// AnnotationIndex holds the two sparse per-block annotation maps: block
// index to epoch-millisecond timestamp, and block index to speaker label.
// Keys always refer to the current block sequence; every structural edit
// must be followed by Apply or ShiftFrom with the matching remap/delta.
type AnnotationIndex struct {
	times    map[int]int64
	speakers map[int]string
}

func NewAnnotationIndex() *AnnotationIndex {
	return &AnnotationIndex{
		times:    make(map[int]int64),
		speakers: make(map[int]string),
	}
}

// Time returns the timestamp annotation for block i, if present.
func (a *AnnotationIndex) Time(i int) (int64, bool) {
	ms, ok := a.times[i]
	return ms, ok
}

// Speaker returns the speaker label for block i, if present.
func (a *AnnotationIndex) Speaker(i int) (string, bool) {
	label, ok := a.speakers[i]
	return label, ok
}

func (a *AnnotationIndex) SetTime(i int, ms int64) {
	a.times[i] = ms
}

// SetTimeIfAbsent writes a timestamp only when block i has none, so a
// block can never be re-stamped. Reports whether a write happened.
func (a *AnnotationIndex) SetTimeIfAbsent(i int, ms int64) bool {
	if _, ok := a.times[i]; ok {
		return false
	}
	a.times[i] = ms
	return true
}

func (a *AnnotationIndex) SetSpeaker(i int, label string) {
	if label == "" {
		delete(a.speakers, i)
		return
	}
	a.speakers[i] = label
}

// TimeCount returns the number of timestamp annotations.
func (a *AnnotationIndex) TimeCount() int {
	return len(a.times)
}

// Times returns a copy of the timestamp map.
func (a *AnnotationIndex) Times() map[int]int64 {
	out := make(map[int]int64, len(a.times))
	for k, v := range a.times {
		out[k] = v
	}
	return out
}

// Speakers returns a copy of the speaker map.
func (a *AnnotationIndex) Speakers() map[int]string {
	out := make(map[int]string, len(a.speakers))
	for k, v := range a.speakers {
		out[k] = v
	}
	return out
}

// ShiftFrom moves every annotation key >= index by delta. Used for plain
// insertions where no remap table is in play.
func (a *AnnotationIndex) ShiftFrom(index, delta int) {
	a.times = shiftKeys(a.times, index, delta)
	a.speakers = shiftKeys(a.speakers, index, delta)
}

// Apply re-keys both maps through a structural remap. Annotations on
// removed blocks are dropped.
func (a *AnnotationIndex) Apply(remap Remap) {
	a.times = remapKeys(a.times, remap)
	a.speakers = remapKeys(a.speakers, remap)
}

// InterpolateSplit stamps the trailing block produced by splitting block
// orig, after the split remap has been applied. A stamped original gives
// the trailing block the midpoint to the next annotated block, or
// original + 3s when none follows. An unstamped original gives the
// trailing block now, and only when the trailing text is non-empty.
func (a *AnnotationIndex) InterpolateSplit(orig int, trailingNonEmpty bool, nowMs int64) {
	trailing := orig + 1
	origTime, stamped := a.times[orig]
	if !stamped {
		if trailingNonEmpty {
			a.times[trailing] = nowMs
		}
		return
	}
	if next, ok := a.nextTimeAfter(trailing); ok {
		a.times[trailing] = (origTime + next) / 2
		return
	}
	a.times[trailing] = origTime + splitFallbackGapMs
}

// nextTimeAfter finds the timestamp of the nearest annotated block with
// index > i.
func (a *AnnotationIndex) nextTimeAfter(i int) (int64, bool) {
	best := -1
	var bestTime int64
	for k, v := range a.times {
		if k <= i {
			continue
		}
		if best == -1 || k < best {
			best, bestTime = k, v
		}
	}
	return bestTime, best != -1
}

func (a *AnnotationIndex) replace(times map[int]int64, speakers map[int]string) {
	a.times = make(map[int]int64, len(times))
	for k, v := range times {
		a.times[k] = v
	}
	a.speakers = make(map[int]string, len(speakers))
	for k, v := range speakers {
		a.speakers[k] = v
	}
}

func shiftKeys[V any](m map[int]V, index, delta int) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		if k >= index {
			out[k+delta] = v
		} else {
			out[k] = v
		}
	}
	return out
}

func remapKeys[V any](m map[int]V, remap Remap) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		nk, ok := remap[k]
		if !ok || nk == Removed {
			continue
		}
		out[nk] = v
	}
	return out
}
