package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/clipboard"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/tui"
)

func NewLiveCmd(deps *Dependencies) *cobra.Command {
	var name string
	var noAudio bool

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Start a live note session with recording",
		Long:  "Start recording audio and open the note editor in live mode.\nTyping the first character of a note stamps it with the current time; double-click a note later to jump playback there.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			ctrl := deps.App.NewController(notes.Collaborators{
				Clipboard: clipboard.System{},
			})

			var sessionName string
			if noAudio {
				// Notes-only session: same live semantics, no capture.
				now := time.Now()
				folder := now.Format("2006-01-02_15-04-05")
				if name != "" {
					folder += "_" + name
				}
				ctrl.StartLive(now)
				sessionName = folder
			} else {
				live, err := deps.App.Sessions.StartLive(name, ctrl)
				if err != nil {
					return err
				}
				sessionName = live.Name
				formatter.RecordingStarted(deps.App.Store.SessionDir(live.Name))
			}
			started := time.Now()

			model := tui.New(ctrl, deps.App.Sessions, sessionName, !noAudio, deps.Config.AutosaveSec)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, runErr := program.Run()

			// The editor stops the capture on quit; this is the safety
			// net for abnormal exits.
			_ = deps.App.Sessions.StopRecording()

			if !noAudio {
				formatter.RecordingStopped(time.Since(started))
			}
			if err := deps.App.Sessions.Save(sessionName, ctrl); err != nil {
				return err
			}
			formatter.SessionSaved(deps.App.Store.SessionDir(sessionName))
			return runErr
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Session name (used in folder name)")
	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "Take live notes without recording audio")

	return cmd
}
