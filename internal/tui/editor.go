package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/session"
)

const (
	tickInterval      = 250 * time.Millisecond
	doubleClickWindow = 400 * time.Millisecond

	headerLines = 2
	footerLines = 2
)

type tickMsg time.Time

type editKind int

const (
	editNone editKind = iota
	editStamp
	editSpeaker
)

// Model is the bubbletea presentation layer around the editor core. It
// translates keystrokes and pointer events into controller operations
// and resolves the controller's focus intents; it owns no note state of
// its own.
type Model struct {
	ctrl *notes.Controller
	mgr  *session.Manager
	name string

	keys keyMap
	st   styles

	focus int
	col   int

	vp          viewport.Model
	ready       bool
	width       int
	height      int
	lineToBlock []int
	blockLine   []int

	input     textinput.Model
	editing   editKind
	editBlock int

	recording bool
	status    string

	autosave time.Duration
	lastSave time.Time

	lastClickAt    time.Time
	lastClickBlock int
	dragging       bool
}

// New builds the editor model. recording marks a live session with an
// active capture; autosaveSec <= 0 disables the rolling backup.
func New(ctrl *notes.Controller, mgr *session.Manager, name string, recording bool, autosaveSec int) Model {
	input := textinput.New()
	input.CharLimit = 64
	return Model{
		ctrl:           ctrl,
		mgr:            mgr,
		name:           name,
		keys:           defaultKeyMap(),
		st:             defaultStyles(),
		input:          input,
		recording:      recording,
		autosave:       time.Duration(autosaveSec) * time.Second,
		lastSave:       time.Now(),
		lastClickBlock: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		body := msg.Height - headerLines - footerLines
		if body < 1 {
			body = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, body)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = body
		}
		m.refresh()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.handleFieldKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.ctrl.Tick(now) {
		// A typing checkpoint fired; mirror it to the rolling backup.
		m.backup()
	}
	if m.autosave > 0 && now.Sub(m.lastSave) >= m.autosave {
		m.backup()
		m.lastSave = now
	}
	return m, tick()
}

func (m *Model) backup() {
	if m.mgr == nil {
		return
	}
	if err := m.mgr.Backup(m.name, m.ctrl); err != nil {
		m.status = "backup failed: " + err.Error()
	}
}

func (m *Model) save() {
	if m.mgr == nil {
		return
	}
	if err := m.mgr.Save(m.name, m.ctrl); err != nil {
		m.status = "save failed: " + err.Error()
	} else {
		m.status = "saved"
		m.lastSave = time.Now()
	}
}

// handleFieldKey routes input to the active timestamp/speaker field.
func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.editing = editNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		switch m.editing {
		case editStamp:
			if !m.ctrl.EditTimestamp(m.editBlock, value) {
				m.status = "invalid timestamp, kept previous value"
			}
		case editSpeaker:
			m.ctrl.SetSpeaker(m.editBlock, value)
		}
		m.editing = editNone
		m.input.Blur()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if matched, model, cmd := m.handleBoundKey(msg); matched {
		return model, cmd
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.applyFocus(m.ctrl.TypeText(m.focus, m.col, string(msg.Runes)))
	case tea.KeySpace:
		m.applyFocus(m.ctrl.TypeText(m.focus, m.col, " "))
	case tea.KeyEnter:
		m.applyFocus(m.ctrl.Enter(m.focus, m.col, false))
	case tea.KeyBackspace:
		if m.col > 0 {
			m.applyFocus(m.ctrl.DeleteTextRange(m.focus, m.col-1, m.col))
		} else {
			m.applyFocus(m.ctrl.BackspaceAtStart(m.focus))
		}
	case tea.KeyDelete:
		if m.ctrl.BlockText(m.focus) == "" {
			m.applyFocus(m.ctrl.DeleteEmptyBlock(m.focus))
		} else {
			m.applyFocus(m.ctrl.DeleteTextRange(m.focus, m.col, m.col+1))
		}
	case tea.KeyLeft:
		if m.col > 0 {
			m.col--
		}
	case tea.KeyRight:
		if m.col < blockLen(m.ctrl, m.focus) {
			m.col++
		}
	case tea.KeyUp:
		if m.focus > 0 {
			m.focus--
			m.clampCol()
		}
	case tea.KeyDown:
		if m.focus < m.ctrl.BlockCount()-1 {
			m.focus++
			m.clampCol()
		}
	case tea.KeyHome:
		m.col = 0
	case tea.KeyEnd:
		m.col = blockLen(m.ctrl, m.focus)
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleBoundKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case matches(msg, keys.Quit):
		m.save()
		if m.recording && m.mgr != nil {
			_ = m.mgr.StopRecording()
		}
		return true, m, tea.Quit
	case matches(msg, keys.Save):
		m.save()
	case matches(msg, keys.Undo):
		if m.ctrl.Undo() {
			m.clampFocus()
			m.status = "undo"
		}
	case matches(msg, keys.Redo):
		if m.ctrl.Redo() {
			m.clampFocus()
			m.status = "redo"
		}
	case matches(msg, keys.Copy):
		if err := m.ctrl.CopySelection(); err != nil {
			m.status = "copy failed: " + err.Error()
		} else if n := m.ctrl.SelectionCount(); n > 0 {
			m.status = "copied"
		}
	case matches(msg, keys.DeleteSel):
		m.applyFocus(m.ctrl.DeleteSelection())
	case matches(msg, keys.EditStamp):
		m.editing = editStamp
		m.editBlock = m.focus
		if ms, ok := m.ctrl.TimeAt(m.focus); ok {
			m.input.SetValue(notes.FormatStampText(ms))
		} else {
			m.input.SetValue("")
		}
		m.input.Placeholder = "YYYY-MM-DD HH:MM:SS"
		m.input.Focus()
		m.input.CursorEnd()
	case matches(msg, keys.EditSpeak):
		m.editing = editSpeaker
		m.editBlock = m.focus
		label, _ := m.ctrl.SpeakerAt(m.focus)
		m.input.SetValue(label)
		m.input.Placeholder = "speaker"
		m.input.Focus()
		m.input.CursorEnd()
	case matches(msg, keys.StopRec):
		if m.recording && m.mgr != nil {
			_ = m.mgr.StopRecording()
			m.recording = false
			m.status = "recording stopped"
		}
	case matches(msg, keys.NewlineAlt):
		m.applyFocus(m.ctrl.Enter(m.focus, m.col, true))
	default:
		return false, m, nil
	}
	m.refresh()
	return true, m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.vp.LineUp(3)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.vp.LineDown(3)
		return m, nil
	}

	block := m.blockAt(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || block < 0 {
			return m, nil
		}
		now := time.Now()
		switch {
		case msg.Shift:
			m.ctrl.ShiftClick(block)
		case msg.Ctrl || msg.Alt:
			m.ctrl.ToggleClick(block)
		case block == m.lastClickBlock && now.Sub(m.lastClickAt) < doubleClickWindow:
			if err := m.ctrl.DoubleClick(block); err != nil {
				m.status = "seek failed: " + err.Error()
			}
			m.lastClickBlock = -1
		default:
			m.ctrl.BeginDrag(block)
			m.dragging = true
			m.lastClickAt = now
			m.lastClickBlock = block
		}
		m.focus = block
		m.col = m.colAt(block, msg.X)
	case tea.MouseActionMotion:
		if m.dragging && block >= 0 {
			m.ctrl.DragOver(block)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.ctrl.EndDrag()
			m.dragging = false
		}
	}
	m.refresh()
	return m, nil
}

// blockAt maps a terminal row to the block rendered there.
func (m *Model) blockAt(y int) int {
	line := y - headerLines + m.vp.YOffset
	if line < 0 || line >= len(m.lineToBlock) {
		return -1
	}
	return m.lineToBlock[line]
}

// colAt approximates the caret column from a click's X position by
// discounting the gutter.
func (m *Model) colAt(block, x int) int {
	col := x - m.gutterWidth(block)
	if col < 0 {
		col = 0
	}
	if max := blockLen(m.ctrl, block); col > max {
		col = max
	}
	return col
}

func (m *Model) applyFocus(fi notes.FocusIntent) {
	if fi.Block < 0 {
		return
	}
	m.focus = fi.Block
	m.col = fi.Col
	m.clampFocus()
	m.scrollToFocus()
}

func (m *Model) clampFocus() {
	if m.focus >= m.ctrl.BlockCount() {
		m.focus = m.ctrl.BlockCount() - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.clampCol()
}

func (m *Model) clampCol() {
	if max := blockLen(m.ctrl, m.focus); m.col > max {
		m.col = max
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m *Model) scrollToFocus() {
	if !m.ready || m.focus >= len(m.blockLine) {
		return
	}
	line := m.blockLine[m.focus]
	if line < m.vp.YOffset {
		m.vp.SetYOffset(line)
	} else if line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

func blockLen(ctrl *notes.Controller, i int) int {
	return len([]rune(ctrl.BlockText(i)))
}
