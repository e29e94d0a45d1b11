package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/audio"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/clipboard"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/domain/notes"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/tui"
)

func NewOpenCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <session>",
		Short: "Open a saved session for review and editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)
			name := args[0]

			player := audio.NewPlayer("")
			defer player.Stop()

			ctrl := deps.App.NewController(notes.Collaborators{
				Player:    player,
				Clipboard: clipboard.System{},
			})

			doc, err := deps.App.Sessions.Open(name, ctrl)
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(doc.AudioPath); statErr == nil {
				player.AudioPath = doc.AudioPath
			} else {
				formatter.Warning("no recording found; double-click playback disabled")
			}
			if n := ctrl.DroppedAnnotations(); n > 0 {
				formatter.Warning("some timestamps did not line up with the notes and were dropped")
			}

			model := tui.New(ctrl, deps.App.Sessions, name, false, deps.Config.AutosaveSec)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, runErr := program.Run()

			if err := deps.App.Sessions.Save(name, ctrl); err != nil {
				return err
			}
			formatter.SessionSaved(deps.App.Store.SessionDir(name))
			return runErr
		},
	}

	return cmd
}
