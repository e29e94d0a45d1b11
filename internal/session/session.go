package session

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/audio"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/store"
)

// Manager holds the collaborators for starting, saving and reopening
// note sessions.
type Manager struct {
	Store          *store.Store
	Recorder       *audio.Recorder
	FolderTemplate string
}

// FolderTemplateData holds the template variables available for folder naming.
type FolderTemplateData struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
	Second string
	Name   string
}

// Live describes a running live session.
type Live struct {
	Name      string
	StartedAt time.Time
	AudioPath string
}

// StartLive creates the session folder, starts the recording and
// switches the controller into Live mode anchored at the recording
// start.
func (m *Manager) StartLive(name string, ctrl *notes.Controller) (*Live, error) {
	if m.Recorder.Recording() {
		return nil, fmt.Errorf("a recording is already in progress")
	}
	if err := m.Recorder.CheckFFmpeg(); err != nil {
		return nil, err
	}

	now := time.Now()
	folder, err := m.renderFolderName(now, name)
	if err != nil {
		return nil, fmt.Errorf("rendering folder name: %w", err)
	}

	audioPath := m.Store.AudioPath(folder)
	if err := m.Store.Save(folder, &store.Document{AnchorMs: now.UnixMilli(), AudioPath: audioPath}); err != nil {
		return nil, err
	}
	if err := m.Recorder.Start(audioPath); err != nil {
		return nil, err
	}

	ctrl.StartLive(now)
	return &Live{Name: folder, StartedAt: now, AudioPath: audioPath}, nil
}

// StopRecording ends the audio capture; the editor keeps running in
// Live mode afterward.
func (m *Manager) StopRecording() error {
	return m.Recorder.Stop()
}

// Save persists the controller's current state as the session
// document, preserving the document identity across saves.
func (m *Manager) Save(name string, ctrl *notes.Controller) error {
	doc := m.document(name, ctrl)
	return m.Store.Save(name, doc)
}

// Backup writes the rolling autosave copy.
func (m *Manager) Backup(name string, ctrl *notes.Controller) error {
	return m.Store.WriteBackup(name, m.document(name, ctrl))
}

func (m *Manager) document(name string, ctrl *notes.Controller) *store.Document {
	doc := &store.Document{
		AnchorMs:  ctrl.AnchorMs(),
		Text:      ctrl.SerializedText(),
		Positions: ctrl.Positions(),
		Speakers:  ctrl.SpeakerEntries(),
	}
	if prev, err := m.Store.Load(name); err == nil {
		doc.ID = prev.ID
		doc.AudioPath = prev.AudioPath
	}
	return doc
}

// Open restores a saved session into the controller (Loaded mode) and
// returns the document for the caller to wire playback.
func (m *Manager) Open(name string, ctrl *notes.Controller) (*store.Document, error) {
	doc, err := m.Store.Load(name)
	if err != nil {
		return nil, err
	}
	ctrl.LoadDocument(doc.Text, doc.Positions, doc.Speakers, time.UnixMilli(doc.AnchorMs))
	return doc, nil
}

func (m *Manager) renderFolderName(t time.Time, name string) (string, error) {
	tmpl, err := template.New("folder").Parse(m.FolderTemplate)
	if err != nil {
		return "", fmt.Errorf("invalid folder template: %w", err)
	}

	data := FolderTemplateData{
		Year:   t.Format("2006"),
		Month:  t.Format("01"),
		Day:    t.Format("02"),
		Hour:   t.Format("15"),
		Minute: t.Format("04"),
		Second: t.Format("05"),
		Name:   name,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing folder template: %w", err)
	}
	return buf.String(), nil
}
