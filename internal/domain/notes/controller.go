package notes

import (
	"time"
	"unicode/utf8"
)

// Mode governs how the editor reacts to typing and how timestamps are
// rendered.
type Mode int

const (
	// ModeLive is active while (or right after) a recording runs;
	// typing into an empty block auto-stamps it.
	ModeLive Mode = iota

	// ModeLoaded is the state after restoring a saved session;
	// auto-stamping is off and Enter inserts a literal newline.
	ModeLoaded
)

func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "loaded"
}

// Player is the audio-playback collaborator. Seek positions playback
// relative to the anchor time.
type Player interface {
	Seek(rel time.Duration) error
}

// Clipboard receives the newline-joined text of a copied selection.
type Clipboard interface {
	WriteText(text string) error
}

// FocusIntent tells the presentation layer where the caret should land
// after an operation. Block -1 means no focus change.
type FocusIntent struct {
	Block int
	Col   int
}

var noFocus = FocusIntent{Block: -1, Col: -1}

// Config holds the editor core tunables.
type Config struct {
	Separator    string        // block separator in the serialized text
	StampLead    time.Duration // subtracted from now when auto-stamping
	Debounce     time.Duration // typing idle window before a checkpoint
	HistoryLimit int
}

// DefaultConfig returns the tunables used when a field is unset.
func DefaultConfig() Config {
	return Config{
		Separator:    DefaultSeparator,
		StampLead:    5 * time.Second,
		Debounce:     DefaultDebounce,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Collaborators are the external parties the controller talks to. Any
// field may be nil, in which case the corresponding events are dropped.
type Collaborators struct {
	Player    Player
	Clipboard Clipboard
}

// Controller orchestrates the editor core. It is the sole writer of the
// block sequence, the annotation maps, the selection, and the history;
// everything else receives copies or proposals. All methods are
// synchronous and must be called from a single goroutine.
type Controller struct {
	cfg    Config
	collab Collaborators

	blocks  *BlockStore
	annots  *AnnotationIndex
	sel     *SelectionModel
	history *HistoryStack

	mode     Mode
	anchorMs int64

	clock func() time.Time

	droppedAnnotations int
}

func NewController(cfg Config, collab Collaborators) *Controller {
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	if cfg.StampLead == 0 {
		cfg.StampLead = DefaultConfig().StampLead
	}
	c := &Controller{
		cfg:     cfg,
		collab:  collab,
		blocks:  NewBlockStore(nil),
		annots:  NewAnnotationIndex(),
		sel:     NewSelectionModel(),
		history: NewHistoryStack(cfg.HistoryLimit, cfg.Debounce),
		mode:    ModeLive,
	}
	c.history.Push(c.snapshot())
	return c
}

// SetClock overrides the wall clock, for tests.
func (c *Controller) SetClock(clock func() time.Time) {
	c.clock = clock
}

func (c *Controller) now() time.Time {
	if c.clock != nil {
		return c.clock()
	}
	return time.Now()
}

// StartLive discards the entire editor state, history included, and
// begins a fresh Live session anchored at the given instant.
func (c *Controller) StartLive(anchor time.Time) {
	c.blocks = NewBlockStore(nil)
	c.annots = NewAnnotationIndex()
	c.sel = NewSelectionModel()
	c.history.Reset()
	c.mode = ModeLive
	c.anchorMs = anchor.UnixMilli()
	c.droppedAnnotations = 0
	c.history.Push(c.snapshot())
}

// LoadDocument replaces the editor state with a session decoded from
// the persistence tuple and switches to Loaded mode. External offsets
// without an exact block-start match are dropped and counted.
func (c *Controller) LoadDocument(text string, positions []PositionEntry, speakers []SpeakerEntry, anchor time.Time) {
	blocks, times, dropped := DecodePositions(text, positions, c.cfg.Separator)
	c.blocks = NewBlockStore(blocks)
	c.annots = NewAnnotationIndex()
	speakerMap := make(map[int]string, len(speakers))
	for _, s := range speakers {
		if s.Block >= 0 && s.Block < c.blocks.Len() {
			speakerMap[s.Block] = s.Speaker
		}
	}
	c.annots.replace(times, speakerMap)
	c.sel = NewSelectionModel()
	c.history.Reset()
	c.mode = ModeLoaded
	c.anchorMs = anchor.UnixMilli()
	c.droppedAnnotations = dropped
	c.history.Push(c.snapshot())
}

// Mode returns the current editing mode.
func (c *Controller) Mode() Mode { return c.mode }

// AnchorMs returns the externally supplied anchor as epoch milliseconds.
func (c *Controller) AnchorMs() int64 { return c.anchorMs }

// BlockCount returns the number of blocks.
func (c *Controller) BlockCount() int { return c.blocks.Len() }

// BlockText returns the text of block i.
func (c *Controller) BlockText(i int) string { return c.blocks.Get(i) }

// Blocks returns a copy of the block sequence.
func (c *Controller) Blocks() []string { return c.blocks.Blocks() }

// TimeAt returns block i's timestamp annotation, if any.
func (c *Controller) TimeAt(i int) (int64, bool) { return c.annots.Time(i) }

// SpeakerAt returns block i's speaker label, if any.
func (c *Controller) SpeakerAt(i int) (string, bool) { return c.annots.Speaker(i) }

// DroppedAnnotations reports how many external offsets failed to match
// a block start during the last LoadDocument.
func (c *Controller) DroppedAnnotations() int { return c.droppedAnnotations }

// SerializedText returns the flat persistence serialization of the
// block sequence.
func (c *Controller) SerializedText() string {
	return SerializeBlocks(c.blocks.Blocks(), c.cfg.Separator)
}

// Positions recomputes the external position map from scratch.
func (c *Controller) Positions() []PositionEntry {
	return EncodePositions(c.blocks.Blocks(), c.annots.Times(), c.cfg.Separator)
}

// SpeakerEntries returns the speaker map in persistence form.
func (c *Controller) SpeakerEntries() []SpeakerEntry {
	speakers := c.annots.Speakers()
	out := make([]SpeakerEntry, 0, len(speakers))
	for i := 0; i < c.blocks.Len(); i++ {
		if label, ok := speakers[i]; ok {
			out = append(out, SpeakerEntry{Block: i, Speaker: label})
		}
	}
	return out
}

// snapshot deep-copies the editable state.
func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Blocks:   c.blocks.Blocks(),
		Times:    c.annots.Times(),
		Speakers: c.annots.Speakers(),
	}
}

func (c *Controller) restore(snap Snapshot) {
	c.blocks = NewBlockStore(snap.Blocks)
	c.annots = NewAnnotationIndex()
	c.annots.replace(snap.Times, snap.Speakers)
	c.sel.Clear()
}

// checkpoint pushes the pre-mutation state synchronously. A pending
// typing checkpoint is superseded and dropped.
func (c *Controller) checkpoint() {
	c.history.CancelDebounced()
	c.history.Push(c.snapshot())
}

// TypeText inserts text into block i at rune offset col. In Live mode,
// the keystroke that takes an empty block to non-empty stamps it with
// now minus the configured lead; a block is never re-stamped. The
// history checkpoint is debounced, not immediate.
func (c *Controller) TypeText(i, col int, text string) FocusIntent {
	if i < 0 || i >= c.blocks.Len() || text == "" {
		return noFocus
	}
	runes := []rune(c.blocks.Get(i))
	if col < 0 {
		col = 0
	}
	if col > len(runes) {
		col = len(runes)
	}
	wasEmpty := len(runes) == 0

	out := make([]rune, 0, len(runes)+utf8.RuneCountInString(text))
	out = append(out, runes[:col]...)
	out = append(out, []rune(text)...)
	out = append(out, runes[col:]...)
	c.blocks.Set(i, string(out))

	if c.mode == ModeLive && wasEmpty {
		c.annots.SetTimeIfAbsent(i, c.now().Add(-c.cfg.StampLead).UnixMilli())
	}
	c.history.ScheduleDebounced(c.now())
	return FocusIntent{Block: i, Col: col + utf8.RuneCountInString(text)}
}

// DeleteTextRange removes runes [from, to) inside block i. Not a
// structural edit; the checkpoint is debounced like typing.
func (c *Controller) DeleteTextRange(i, from, to int) FocusIntent {
	if i < 0 || i >= c.blocks.Len() {
		return noFocus
	}
	runes := []rune(c.blocks.Get(i))
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return noFocus
	}
	c.blocks.Set(i, string(append(runes[:from:from], runes[to:]...)))
	c.history.ScheduleDebounced(c.now())
	return FocusIntent{Block: i, Col: from}
}

// Enter handles the Enter key. Shift+Enter is a literal newline in both
// modes; a plain Enter splits the block in Live mode and is a literal
// newline in Loaded mode.
func (c *Controller) Enter(i, col int, shift bool) FocusIntent {
	if shift || c.mode == ModeLoaded {
		return c.TypeText(i, col, "\n")
	}
	return c.SplitBlock(i, col)
}

// SplitBlock divides block i at rune offset col and stamps the new
// trailing block per the interpolation rule. Focus moves to the start
// of the trailing block.
func (c *Controller) SplitBlock(i, col int) FocusIntent {
	if i < 0 || i >= c.blocks.Len() {
		return noFocus
	}
	c.checkpoint()
	remap := c.blocks.Split(i, col)
	c.annots.Apply(remap)
	c.sel.Apply(remap)
	c.annots.InterpolateSplit(i, c.blocks.Get(i+1) != "", c.now().UnixMilli())
	return FocusIntent{Block: i + 1, Col: 0}
}

// BackspaceAtStart handles Backspace with the caret at column zero and
// nothing selected: an empty block is removed outright, a non-empty one
// is merged onto its predecessor with the caret left at the old
// boundary. At block zero this is a no-op.
func (c *Controller) BackspaceAtStart(i int) FocusIntent {
	if i <= 0 || i >= c.blocks.Len() {
		return noFocus
	}
	prevLen := utf8.RuneCountInString(c.blocks.Get(i - 1))
	c.checkpoint()
	var remap Remap
	if c.blocks.Get(i) == "" {
		remap = c.blocks.DeleteIndices([]int{i})
	} else {
		remap, _ = c.blocks.Merge(i)
	}
	c.annots.Apply(remap)
	c.sel.Apply(remap)
	return FocusIntent{Block: i - 1, Col: prevLen}
}

// DeleteEmptyBlock handles the Delete key on an empty block. Removing
// the last remaining block is a structural no-op.
func (c *Controller) DeleteEmptyBlock(i int) FocusIntent {
	if i < 0 || i >= c.blocks.Len() || c.blocks.Get(i) != "" || c.blocks.Len() <= 1 {
		return noFocus
	}
	c.checkpoint()
	remap := c.blocks.DeleteIndices([]int{i})
	c.annots.Apply(remap)
	c.sel.Apply(remap)
	focus := i
	if focus >= c.blocks.Len() {
		focus = c.blocks.Len() - 1
	}
	return FocusIntent{Block: focus, Col: 0}
}

// Click, ShiftClick, ToggleClick, BeginDrag, DragOver and EndDrag feed
// pointer events into the selection model.
func (c *Controller) Click(i int)       { c.sel.Click(i) }
func (c *Controller) ShiftClick(i int)  { c.sel.ShiftClick(i) }
func (c *Controller) ToggleClick(i int) { c.sel.ToggleClick(i) }
func (c *Controller) BeginDrag(i int)   { c.sel.BeginDrag(i) }
func (c *Controller) DragOver(i int)    { c.sel.DragOver(i) }
func (c *Controller) EndDrag()          { c.sel.EndDrag() }

// Selected reports whether block i is part of the selection.
func (c *Controller) Selected(i int) bool { return c.sel.Selected(i) }

// SelectionCount returns the number of selected blocks.
func (c *Controller) SelectionCount() int { return c.sel.Count() }

// SelectionIndices returns the selected indices in ascending order.
func (c *Controller) SelectionIndices() []int { return c.sel.Indices() }

// CopySelection hands the newline-joined selected text to the
// clipboard collaborator.
func (c *Controller) CopySelection() error {
	if c.collab.Clipboard == nil || c.sel.Count() == 0 {
		return nil
	}
	return c.collab.Clipboard.WriteText(c.sel.JoinText(c.blocks.Blocks()))
}

// DeleteSelection removes every selected block, remaps the annotations
// and clears the selection. The sequence never drops below one block.
func (c *Controller) DeleteSelection() FocusIntent {
	indices := c.sel.Indices()
	if len(indices) == 0 {
		return noFocus
	}
	c.checkpoint()
	remap := c.blocks.DeleteIndices(indices)
	c.annots.Apply(remap)
	c.sel.Clear()
	focus := indices[0]
	if focus >= c.blocks.Len() {
		focus = c.blocks.Len() - 1
	}
	return FocusIntent{Block: focus, Col: 0}
}

// DoubleClick on an annotated block asks the player to seek to the
// block's time relative to the anchor. Unannotated blocks do nothing.
func (c *Controller) DoubleClick(i int) error {
	ms, ok := c.annots.Time(i)
	if !ok || c.collab.Player == nil {
		return nil
	}
	return c.collab.Player.Seek(time.Duration(ms-c.anchorMs) * time.Millisecond)
}

// EditTimestamp applies a manually edited timestamp to block i. The
// text must match YYYY-MM-DD HH:MM:SS exactly; anything else leaves the
// existing annotation untouched and reports false.
func (c *Controller) EditTimestamp(i int, text string) bool {
	if i < 0 || i >= c.blocks.Len() {
		return false
	}
	ms, ok := ParseStampText(text)
	if !ok {
		return false
	}
	c.checkpoint()
	c.annots.SetTime(i, ms)
	return true
}

// SetSpeaker attaches a speaker label to block i; an empty label clears
// it.
func (c *Controller) SetSpeaker(i int, label string) {
	if i < 0 || i >= c.blocks.Len() {
		return
	}
	c.checkpoint()
	c.annots.SetSpeaker(i, label)
}

// InsertNoteAtTime services the audio player's request for a new note
// at an absolute time: the planner picks the physical index, an empty
// stamped block is inserted there, and focus moves into it.
func (c *Controller) InsertNoteAtTime(abs time.Time) FocusIntent {
	c.checkpoint()
	ms := abs.UnixMilli()
	at := PlanInsertion(ms, c.annots.Times(), c.blocks.Len())
	remap := c.blocks.InsertEmpty(at)
	c.annots.Apply(remap)
	c.sel.Apply(remap)
	c.annots.SetTime(at, ms)
	return FocusIntent{Block: at, Col: 0}
}

// Undo restores the previous snapshot. The selection does not survive.
func (c *Controller) Undo() bool {
	c.history.CancelDebounced()
	snap, ok := c.history.Undo(c.snapshot())
	if !ok {
		return false
	}
	c.restore(snap)
	return true
}

// Redo restores the snapshot undone last.
func (c *Controller) Redo() bool {
	snap, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.restore(snap)
	return true
}

// HistoryLen returns the number of stored history snapshots.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// Tick gives the debounced typing checkpoint a chance to fire. The host
// event loop calls this periodically; it reports whether a checkpoint
// was pushed, which doubles as the autosave trigger.
func (c *Controller) Tick(now time.Time) bool {
	return c.history.FlushDebounced(now, c.snapshot())
}
