package notes

import (
	"reflect"
	"testing"
)

func TestEncodeOffsets(t *testing.T) {
	blocks := []string{"abc", "de", "f"}
	times := map[int]int64{0: 100, 2: 300}

	entries := EncodePositions(blocks, times, "\n")

	// Block starts: 0, 4 (3+1 sep), 7 (4+2+1 sep).
	want := []PositionEntry{{Offset: 0, TimeMs: 100}, {Offset: 7, TimeMs: 300}}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %v, want %v", entries, want)
	}
}

func TestEncodeCountsRunesNotBytes(t *testing.T) {
	blocks := []string{"héllo", "x"}
	times := map[int]int64{1: 42}

	entries := EncodePositions(blocks, times, "\n")
	if len(entries) != 1 || entries[0].Offset != 6 {
		t.Fatalf("entries = %v, want offset 6 (5 runes + separator)", entries)
	}
}

func TestRoundTrip(t *testing.T) {
	blocks := []string{"intro", "", "héllo wörld", "closing remarks"}
	times := map[int]int64{0: 1000, 2: 5000, 3: 9000}

	text := SerializeBlocks(blocks, "\n")
	entries := EncodePositions(blocks, times, "\n")
	gotBlocks, gotTimes, dropped := DecodePositions(text, entries, "\n")

	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if !reflect.DeepEqual(gotBlocks, blocks) {
		t.Errorf("blocks = %v, want %v", gotBlocks, blocks)
	}
	if !reflect.DeepEqual(gotTimes, times) {
		t.Errorf("times = %v, want %v", gotTimes, times)
	}
}

func TestRoundTripCustomSeparator(t *testing.T) {
	blocks := []string{"a", "b", "c"}
	times := map[int]int64{1: 7}

	text := SerializeBlocks(blocks, " ")
	entries := EncodePositions(blocks, times, " ")
	gotBlocks, gotTimes, dropped := DecodePositions(text, entries, " ")

	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if !reflect.DeepEqual(gotBlocks, blocks) || !reflect.DeepEqual(gotTimes, times) {
		t.Errorf("round trip = %v %v, want %v %v", gotBlocks, gotTimes, blocks, times)
	}
}

func TestDecodeDropsInexactOffsets(t *testing.T) {
	text := "abc\nde"
	entries := []PositionEntry{
		{Offset: 0, TimeMs: 100},
		{Offset: 2, TimeMs: 200}, // inside block 0, no block starts here
		{Offset: 4, TimeMs: 300},
	}

	blocks, times, dropped := DecodePositions(text, entries, "\n")

	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %v, want 2 blocks", blocks)
	}
	want := map[int]int64{0: 100, 1: 300}
	if !reflect.DeepEqual(times, want) {
		t.Errorf("times = %v, want %v", times, want)
	}
}

func TestEncodeSkipsStaleKeys(t *testing.T) {
	blocks := []string{"a"}
	times := map[int]int64{0: 1, 5: 2} // key 5 has no block
	entries := EncodePositions(blocks, times, "\n")
	if len(entries) != 1 {
		t.Fatalf("entries = %v, want the in-range annotation only", entries)
	}
}
