package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
)

const stampColumn = 11 // "[+mm:ss]" / "[15:04:05]" plus a space

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

// refresh rebuilds the viewport content and the line/block mappings
// after any state change.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.clampFocus()

	var lines []string
	m.lineToBlock = m.lineToBlock[:0]
	m.blockLine = m.blockLine[:0]

	count := m.ctrl.BlockCount()
	for i := 0; i < count; i++ {
		m.blockLine = append(m.blockLine, len(lines))
		rendered := m.renderBlock(i)
		for _, line := range strings.Split(rendered, "\n") {
			lines = append(lines, line)
			m.lineToBlock = append(m.lineToBlock, i)
		}
	}

	m.vp.SetContent(strings.Join(lines, "\n"))
	m.scrollToFocus()
}

func (m *Model) renderBlock(i int) string {
	gutter := m.renderGutter(i)
	text := m.ctrl.BlockText(i)
	if i == m.focus && m.editing == editNone {
		text = m.withCursor(text)
	}

	width := m.width - ansi.PrintableRuneWidth(gutter)
	if width < 10 {
		width = 10
	}
	wrapped := wordwrap.String(text, width)

	// Continuation lines indent past the gutter.
	indent := strings.Repeat(" ", ansi.PrintableRuneWidth(gutter))
	parts := strings.Split(wrapped, "\n")
	for j := 1; j < len(parts); j++ {
		parts[j] = indent + parts[j]
	}
	out := gutter + strings.Join(parts, "\n")

	if m.ctrl.Selected(i) {
		sel := make([]string, 0, len(parts))
		for _, line := range strings.Split(out, "\n") {
			sel = append(sel, m.st.selected.Render(line))
		}
		out = strings.Join(sel, "\n")
	}
	return out
}

func (m *Model) renderGutter(i int) string {
	stamp := strings.Repeat(" ", stampColumn)
	if ms, ok := m.ctrl.TimeAt(i); ok {
		s := "[" + notes.FormatStamp(ms, m.ctrl.Mode(), m.ctrl.AnchorMs()) + "]"
		stamp = m.st.stamp.Render(runewidth.FillRight(s, stampColumn))
	}
	speaker := ""
	if label, ok := m.ctrl.SpeakerAt(i); ok {
		speaker = m.st.speaker.Render(label+":") + " "
	}
	return stamp + speaker
}

// gutterWidth is the printable width of block i's gutter, used to map
// click X positions to columns.
func (m *Model) gutterWidth(i int) int {
	return ansi.PrintableRuneWidth(m.renderGutter(i))
}

// withCursor marks the caret position with a reverse-video cell.
func (m *Model) withCursor(text string) string {
	runes := []rune(text)
	col := m.col
	if col > len(runes) {
		col = len(runes)
	}
	if col == len(runes) {
		return text + m.st.cursor.Render(" ")
	}
	return string(runes[:col]) + m.st.cursor.Render(string(runes[col])) + string(runes[col+1:])
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := m.st.header.Render(m.name)
	mode := m.st.mode.Render("[" + m.ctrl.Mode().String() + "]")
	rec := ""
	if m.recording {
		rec = " " + m.st.rec.Render("● REC")
	}
	header := fmt.Sprintf("%s %s%s\n", title, mode, rec)

	footer := m.renderFooter()
	return header + "\n" + m.vp.View() + "\n" + footer
}

func (m Model) renderFooter() string {
	if m.editing != editNone {
		label := "timestamp"
		if m.editing == editSpeaker {
			label = "speaker"
		}
		return fmt.Sprintf("%s %s\n%s", label+":", m.input.View(),
			m.st.help.Render("enter apply · esc cancel"))
	}

	status := ""
	if m.status != "" {
		status = m.st.status.Render(m.status) + "  "
	}
	k := m.keys
	help := m.st.help.Render(strings.Join([]string{
		k.Save.Help().Key + " " + k.Save.Help().Desc,
		k.Undo.Help().Key + " " + k.Undo.Help().Desc,
		k.Copy.Help().Key + " " + k.Copy.Help().Desc,
		k.EditStamp.Help().Key + " " + k.EditStamp.Help().Desc,
		k.Quit.Help().Key + " " + k.Quit.Help().Desc,
	}, " · "))
	return status + "\n" + help
}
