package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
)

const (
	notesFile  = "notes.json"
	backupFile = "backup.json"
	audioFile  = "recording.wav"
)

// Document is the persistence tuple for one note session: the flat
// serialized text, the offset-keyed position map, the speaker map and
// the anchor time.
type Document struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	SavedAt   time.Time             `json:"saved_at"`
	AnchorMs  int64                 `json:"anchor_ms"`
	AudioPath string                `json:"audio_path,omitempty"`
	Text      string                `json:"text"`
	Positions []notes.PositionEntry `json:"positions"`
	Speakers  []notes.SpeakerEntry  `json:"speakers"`
}

// Session summarizes one saved session directory.
type Session struct {
	Name      string
	HasNotes  bool
	HasAudio  bool
	HasBackup bool
}

// Store reads and writes session documents under a base directory, one
// subdirectory per session.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// SessionDir returns the directory for a named session.
func (s *Store) SessionDir(name string) string {
	return filepath.Join(s.Dir, name)
}

// AudioPath returns where the session's recording lives.
func (s *Store) AudioPath(name string) string {
	return filepath.Join(s.SessionDir(name), audioFile)
}

// Save writes the session document. A document without an ID is
// assigned one; SavedAt is always refreshed.
func (s *Store) Save(name string, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.Name = name
	doc.SavedAt = time.Now()
	return s.write(filepath.Join(s.SessionDir(name), notesFile), doc)
}

// WriteBackup writes the rolling autosave copy next to the main
// document. It does not touch the document's identity fields.
func (s *Store) WriteBackup(name string, doc *Document) error {
	return s.write(filepath.Join(s.SessionDir(name), backupFile), doc)
}

func (s *Store) write(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session document: %w", err)
	}
	return nil
}

// Load reads a session's document, falling back to the backup copy
// when the main file is missing.
func (s *Store) Load(name string) (*Document, error) {
	dir := s.SessionDir(name)
	data, err := os.ReadFile(filepath.Join(dir, notesFile))
	if os.IsNotExist(err) {
		data, err = os.ReadFile(filepath.Join(dir, backupFile))
	}
	if err != nil {
		return nil, fmt.Errorf("no notes found for session %q", name)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reading session document: %w", err)
	}
	return &doc, nil
}

// Sessions lists saved sessions, newest first (names are date-based).
func (s *Store) Sessions() ([]Session, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := s.SessionDir(e.Name())
		out = append(out, Session{
			Name:      e.Name(),
			HasNotes:  exists(filepath.Join(dir, notesFile)),
			HasAudio:  exists(filepath.Join(dir, audioFile)),
			HasBackup: exists(filepath.Join(dir, backupFile)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
