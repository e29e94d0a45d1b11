package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
)

// Export renders a session's notes as markdown next to its recording
// and returns the written path. Stamped blocks carry their offset from
// the anchor; speaker labels become bold prefixes.
func (m *Manager) Export(name string, separator string) (string, error) {
	doc, err := m.Store.Load(name)
	if err != nil {
		return "", err
	}
	blocks, times, _ := notes.DecodePositions(doc.Text, doc.Positions, separator)
	speakers := make(map[int]string, len(doc.Speakers))
	for _, s := range doc.Speakers {
		speakers[s.Block] = s.Speaker
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "Recorded %s\n\n", time.UnixMilli(doc.AnchorMs).Format("2006-01-02 15:04"))
	for i, text := range blocks {
		if text == "" {
			continue
		}
		var prefix string
		if ms, ok := times[i]; ok {
			prefix = fmt.Sprintf("[%s] ", notes.FormatOffset(ms-doc.AnchorMs))
		}
		if label, ok := speakers[i]; ok {
			prefix += fmt.Sprintf("**%s**: ", label)
		}
		fmt.Fprintf(&b, "- %s%s\n", prefix, strings.ReplaceAll(text, "\n", "\n  "))
	}

	path := filepath.Join(m.Store.SessionDir(name), "notes.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
