package notes

import (
	"reflect"
	"testing"
	"time"
)

type fakePlayer struct {
	seeks []time.Duration
}

func (p *fakePlayer) Seek(rel time.Duration) error {
	p.seeks = append(p.seeks, rel)
	return nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

// testController returns a live controller with a controllable clock
// starting at the anchor.
func testController(t *testing.T, collab Collaborators) (*Controller, *time.Time) {
	t.Helper()
	anchor := time.UnixMilli(1_700_000_000_000)
	now := anchor
	c := NewController(Config{StampLead: 5 * time.Second, Debounce: time.Second}, collab)
	c.SetClock(func() time.Time { return now })
	c.StartLive(anchor)
	return c, &now
}

func TestLiveTypingAutoStampsOnce(t *testing.T) {
	c, now := testController(t, Collaborators{})

	c.TypeText(0, 0, "h")
	ms, ok := c.TimeAt(0)
	if !ok {
		t.Fatal("first keystroke into an empty block should stamp it")
	}
	want := now.UnixMilli() - 5000
	if ms != want {
		t.Errorf("stamp = %d, want now-lead %d", ms, want)
	}

	*now = now.Add(time.Minute)
	c.TypeText(0, 1, "i")
	if ms2, _ := c.TimeAt(0); ms2 != ms {
		t.Errorf("stamp changed on second keystroke: %d -> %d", ms, ms2)
	}

	// Emptying the block and typing again must not re-stamp.
	c.DeleteTextRange(0, 0, 2)
	c.TypeText(0, 0, "x")
	if ms3, _ := c.TimeAt(0); ms3 != ms {
		t.Errorf("block was re-stamped: %d -> %d", ms, ms3)
	}
}

func TestLoadedTypingNeverStamps(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("alpha\nbeta", nil, nil, time.UnixMilli(1_700_000_000_000))

	c.TypeText(0, 0, "x")
	if _, ok := c.TimeAt(0); ok {
		t.Fatal("typing in Loaded mode must not stamp")
	}
}

func TestEnterSplitsInLiveMode(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "hello world")

	focus := c.Enter(0, 5, false)
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"hello", " world"}) {
		t.Fatalf("blocks = %v, want [hello, ' world']", got)
	}
	if focus.Block != 1 || focus.Col != 0 {
		t.Errorf("focus = %+v, want start of trailing block", focus)
	}
	// The original was stamped by typing, so the trailing block gets the
	// fallback original+3s stamp (nothing annotated after it).
	orig, _ := c.TimeAt(0)
	trail, ok := c.TimeAt(1)
	if !ok || trail != orig+3000 {
		t.Errorf("trailing stamp = %d (%v), want %d", trail, ok, orig+3000)
	}
}

func TestEnterIsLiteralNewlineInLoadedMode(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("alpha", nil, nil, time.Now())

	c.Enter(0, 2, false)
	if got := c.BlockCount(); got != 1 {
		t.Fatalf("BlockCount = %d, want 1 (no split in Loaded mode)", got)
	}
	if got := c.BlockText(0); got != "al\npha" {
		t.Errorf("block = %q, want literal newline inside", got)
	}
}

func TestShiftEnterIsLiteralNewlineInLiveMode(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "ab")

	c.Enter(0, 1, true)
	if got := c.BlockCount(); got != 1 {
		t.Fatalf("BlockCount = %d, want 1", got)
	}
	if got := c.BlockText(0); got != "a\nb" {
		t.Errorf("block = %q, want a\\nb", got)
	}
}

func TestBackspaceAtStartMerges(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("hello\nworld", EncodePositions([]string{"hello", "world"}, map[int]int64{0: 100, 1: 200}, "\n"), nil, time.Now())

	focus := c.BackspaceAtStart(1)
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"helloworld"}) {
		t.Fatalf("blocks = %v, want [helloworld]", got)
	}
	if focus.Block != 0 || focus.Col != 5 {
		t.Errorf("focus = %+v, want caret at the old boundary", focus)
	}
	if ms, _ := c.TimeAt(0); ms != 100 {
		t.Errorf("surviving stamp = %d, want 100", ms)
	}
	if _, ok := c.TimeAt(1); ok {
		t.Error("merged block's stamp should be dropped")
	}
}

func TestBackspaceAtStartRemovesEmptyBlock(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("a\n\nb", nil, nil, time.Now())

	focus := c.BackspaceAtStart(1)
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("blocks = %v, want [a b]", got)
	}
	if focus.Block != 0 || focus.Col != 1 {
		t.Errorf("focus = %+v, want end of previous block", focus)
	}
}

func TestBackspaceAtStartOfFirstBlockIsNoOp(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "x")
	focus := c.BackspaceAtStart(0)
	if focus != noFocus {
		t.Errorf("focus = %+v, want none", focus)
	}
	if c.BlockCount() != 1 {
		t.Errorf("BlockCount = %d, want 1", c.BlockCount())
	}
}

func TestDeleteEmptyBlock(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("a\n\nb", nil, nil, time.Now())

	c.DeleteEmptyBlock(1)
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("blocks = %v, want [a b]", got)
	}

	// Non-empty blocks and the final survivor are both no-ops.
	if focus := c.DeleteEmptyBlock(0); focus != noFocus {
		t.Error("deleting a non-empty block should be a no-op")
	}
	c.LoadDocument("", nil, nil, time.Now())
	if focus := c.DeleteEmptyBlock(0); focus != noFocus {
		t.Error("deleting the last block should be a no-op")
	}
}

func TestDeleteSelectionUnannotatedBlock(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("A\nB", EncodePositions([]string{"A", "B"}, map[int]int64{0: 1000}, "\n"), nil, time.Now())

	c.Click(1)
	c.DeleteSelection()

	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("blocks = %v, want [A]", got)
	}
	if ms, ok := c.TimeAt(0); !ok || ms != 1000 {
		t.Errorf("stamp = %d (%v), want untouched 1000", ms, ok)
	}
	if c.SelectionCount() != 0 {
		t.Error("selection should be cleared after delete")
	}
}

func TestDeleteSelectionRemapsAnnotations(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	blocks := []string{"A", "B", "C", "D"}
	times := map[int]int64{0: 10, 1: 20, 2: 30, 3: 40}
	c.LoadDocument(SerializeBlocks(blocks, "\n"), EncodePositions(blocks, times, "\n"), nil, time.Now())

	c.Click(1)
	c.ToggleClick(3)
	c.DeleteSelection()

	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("blocks = %v, want [A C]", got)
	}
	wantTimes := map[int]int64{0: 10, 1: 30}
	got := map[int]int64{}
	for i := 0; i < c.BlockCount(); i++ {
		if ms, ok := c.TimeAt(i); ok {
			got[i] = ms
		}
	}
	if !reflect.DeepEqual(got, wantTimes) {
		t.Errorf("times = %v, want %v", got, wantTimes)
	}
}

func TestCopySelectionJoinsWithNewlines(t *testing.T) {
	clip := &fakeClipboard{}
	c, _ := testController(t, Collaborators{Clipboard: clip})
	c.LoadDocument("one\ntwo\nthree", nil, nil, time.Now())

	c.Click(2)
	c.ToggleClick(0)
	if err := c.CopySelection(); err != nil {
		t.Fatalf("CopySelection: %v", err)
	}
	if clip.text != "one\nthree" {
		t.Errorf("clipboard = %q, want %q", clip.text, "one\nthree")
	}
}

func TestDoubleClickSeeksRelativeToAnchor(t *testing.T) {
	player := &fakePlayer{}
	c, _ := testController(t, Collaborators{Player: player})
	anchor := time.UnixMilli(c.AnchorMs())
	c.LoadDocument("A\nB", EncodePositions([]string{"A", "B"}, map[int]int64{1: anchor.UnixMilli() + 42_000}, "\n"), nil, anchor)

	if err := c.DoubleClick(1); err != nil {
		t.Fatalf("DoubleClick: %v", err)
	}
	if len(player.seeks) != 1 || player.seeks[0] != 42*time.Second {
		t.Fatalf("seeks = %v, want [42s]", player.seeks)
	}

	// Unannotated block: no seek.
	c.DoubleClick(0)
	if len(player.seeks) != 1 {
		t.Error("double-click on an unannotated block must not seek")
	}
}

func TestInsertNoteAtTime(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	blocks := []string{"A", "B", "C"}
	times := map[int]int64{0: 1000, 2: 5000}
	c.LoadDocument(SerializeBlocks(blocks, "\n"), EncodePositions(blocks, times, "\n"), nil, time.Now())

	focus := c.InsertNoteAtTime(time.UnixMilli(3000))

	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"A", "", "B", "C"}) {
		t.Fatalf("blocks = %v, want [A '' B C]", got)
	}
	if focus.Block != 1 || focus.Col != 0 {
		t.Errorf("focus = %+v, want the new block", focus)
	}
	wantTimes := map[int]int64{0: 1000, 1: 3000, 3: 5000}
	got := map[int]int64{}
	for i := 0; i < c.BlockCount(); i++ {
		if ms, ok := c.TimeAt(i); ok {
			got[i] = ms
		}
	}
	if !reflect.DeepEqual(got, wantTimes) {
		t.Errorf("times = %v, want %v", got, wantTimes)
	}
}

func TestEditTimestampInvalidKeepsPrior(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.LoadDocument("A", EncodePositions([]string{"A"}, map[int]int64{0: 777}, "\n"), nil, time.Now())

	for _, bad := range []string{
		"2024-13-40 99:99:99",
		"yesterday",
		"2024-01-02T03:04:05",
		"2024-1-2 03:04:05",
		"",
	} {
		if c.EditTimestamp(0, bad) {
			t.Errorf("EditTimestamp(%q) accepted", bad)
		}
		if ms, _ := c.TimeAt(0); ms != 777 {
			t.Fatalf("stamp after %q = %d, want prior 777", bad, ms)
		}
	}
}

func TestEditTimestampValid(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "note")

	if !c.EditTimestamp(0, "2024-03-01 10:30:00") {
		t.Fatal("valid timestamp rejected")
	}
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local).UnixMilli()
	if ms, _ := c.TimeAt(0); ms != want {
		t.Errorf("stamp = %d, want %d", ms, want)
	}
}

func TestUndoRedoThroughController(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "hello")
	c.SplitBlock(0, 2)

	if !c.Undo() {
		t.Fatal("undo failed")
	}
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"hello"}) {
		t.Fatalf("after undo blocks = %v, want [hello]", got)
	}
	if !c.Redo() {
		t.Fatal("redo failed")
	}
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"he", "llo"}) {
		t.Fatalf("after redo blocks = %v, want [he llo]", got)
	}

	// An edit after undo invalidates redo.
	c.Undo()
	c.SplitBlock(0, 1)
	before := c.Blocks()
	if c.Redo() {
		t.Fatal("redo should be a no-op after a fresh edit")
	}
	if got := c.Blocks(); !reflect.DeepEqual(got, before) {
		t.Errorf("blocks changed by no-op redo: %v -> %v", before, got)
	}
}

func TestUndoRedoAroundTimestampEdit(t *testing.T) {
	c, now := testController(t, Collaborators{})

	c.TypeText(0, 0, "a")
	autoStamp, _ := c.TimeAt(0)
	*now = now.Add(2 * time.Second)
	c.Tick(*now) // flush the typing checkpoint

	if !c.EditTimestamp(0, "2024-03-01 10:30:00") {
		t.Fatal("EditTimestamp rejected a valid stamp")
	}
	edited := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local).UnixMilli()

	// Undo reverts only the annotation edit: the text survives and the
	// auto-assigned stamp comes back.
	if !c.Undo() {
		t.Fatal("undo failed")
	}
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after undo blocks = %v, want [a]", got)
	}
	if ms, _ := c.TimeAt(0); ms != autoStamp {
		t.Errorf("after undo stamp = %d, want %d", ms, autoStamp)
	}

	if !c.Redo() {
		t.Fatal("redo failed")
	}
	if ms, _ := c.TimeAt(0); ms != edited {
		t.Errorf("after redo stamp = %d, want %d", ms, edited)
	}
}

func TestTypingDebounceProducesOnePush(t *testing.T) {
	c, now := testController(t, Collaborators{})
	base := c.HistoryLen()

	for i := 0; i < 5; i++ {
		c.TypeText(0, i, "x")
		*now = now.Add(200 * time.Millisecond)
	}
	c.Tick(*now) // 200ms after the last keystroke: not due yet
	if got := c.HistoryLen() - base; got != 0 {
		t.Fatalf("pushes before idle window = %d, want 0", got)
	}
	*now = now.Add(time.Second)
	c.Tick(*now)
	if got := c.HistoryLen() - base; got != 1 {
		t.Fatalf("pushes after burst = %d, want exactly 1", got)
	}
}

func TestRoundTripThroughController(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "first")
	c.SplitBlock(0, 5)
	c.TypeText(1, 0, "second")
	c.SetSpeaker(0, "dana")

	text := c.SerializedText()
	positions := c.Positions()
	speakers := c.SpeakerEntries()

	c2, _ := testController(t, Collaborators{})
	c2.LoadDocument(text, positions, speakers, time.UnixMilli(c.AnchorMs()))

	if c2.Mode() != ModeLoaded {
		t.Fatalf("mode = %v, want loaded", c2.Mode())
	}
	if c2.DroppedAnnotations() != 0 {
		t.Fatalf("dropped = %d, want 0", c2.DroppedAnnotations())
	}
	if !reflect.DeepEqual(c2.Blocks(), c.Blocks()) {
		t.Errorf("blocks = %v, want %v", c2.Blocks(), c.Blocks())
	}
	for i := 0; i < c.BlockCount(); i++ {
		a, aok := c.TimeAt(i)
		b, bok := c2.TimeAt(i)
		if aok != bok || a != b {
			t.Errorf("block %d stamp: %d (%v) vs %d (%v)", i, a, aok, b, bok)
		}
	}
	if label, ok := c2.SpeakerAt(0); !ok || label != "dana" {
		t.Errorf("speaker = %q (%v), want dana", label, ok)
	}
}

func TestStartLiveDiscardsEverything(t *testing.T) {
	c, _ := testController(t, Collaborators{})
	c.TypeText(0, 0, "old")
	c.SplitBlock(0, 1)

	c.StartLive(time.UnixMilli(42))
	if c.Mode() != ModeLive {
		t.Fatalf("mode = %v, want live", c.Mode())
	}
	if c.AnchorMs() != 42 {
		t.Errorf("anchor = %d, want 42", c.AnchorMs())
	}
	if got := c.Blocks(); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("blocks = %v, want a single empty block", got)
	}
	if c.Undo() {
		t.Error("history should be empty after StartLive")
	}
}
