package cli

import (
	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/config"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/app"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "livenotes",
		Short: "Take timestamped meeting notes synchronized with a recording",
		Long:  "A terminal note editor for meetings: record audio, type notes that are auto-tagged with timestamps and speakers, and replay them against the recording later.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewLiveCmd(deps))
	rootCmd.AddCommand(NewOpenCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
