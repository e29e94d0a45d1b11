package app

import (
	"time"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/config"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/audio"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/session"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/store"
)

type App struct {
	Sessions *session.Manager
	Store    *store.Store
	Config   *config.Config
}

func New(cfg *config.Config) (*App, error) {
	st := store.New(cfg.NotesDir)
	recorder := audio.NewRecorder(cfg.InputFormat, cfg.InputDevice)

	sessions := &session.Manager{
		Store:          st,
		Recorder:       recorder,
		FolderTemplate: cfg.FolderTemplate,
	}

	return &App{
		Sessions: sessions,
		Store:    st,
		Config:   cfg,
	}, nil
}

// NotesConfig maps the file configuration onto the editor core's
// tunables.
func (a *App) NotesConfig() notes.Config {
	return notes.Config{
		Separator:    a.Config.BlockSeparator,
		StampLead:    time.Duration(a.Config.StampLeadMs) * time.Millisecond,
		Debounce:     time.Duration(a.Config.DebounceMs) * time.Millisecond,
		HistoryLimit: a.Config.HistoryLimit,
	}
}

// NewController builds an editor core wired to the given collaborators.
func (a *App) NewController(collab notes.Collaborators) *notes.Controller {
	return notes.NewController(a.NotesConfig(), collab)
}
