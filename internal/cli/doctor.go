package cli

import (
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if _, err := exec.LookPath("ffmpeg"); err != nil {
				f.SetupCheck("ffmpeg", false, "not found. Install with: brew install ffmpeg")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			if _, err := exec.LookPath("ffplay"); err != nil {
				f.SetupCheck("ffplay", false, "not found; playback seeking will be disabled")
				ok = false
			} else {
				f.SetupCheck("ffplay", true, "installed")
			}

			if clipboard.Unsupported {
				f.SetupCheck("Clipboard", false, "no clipboard utility found; copy will not work")
			} else {
				f.SetupCheck("Clipboard", true, "available")
			}

			f.SetupCheck("Audio input", true, deps.Config.InputFormat+" / "+deps.Config.InputDevice)
			f.SetupCheck("Notes directory", true, deps.Config.NotesDir)

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
