package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			sessions, err := deps.App.Store.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				formatter.Info("No sessions found")
				return nil
			}

			formatter.SessionListHeader()
			for _, s := range sessions {
				formatter.SessionListItem(s.Name, s.HasNotes || s.HasBackup, s.HasAudio)
			}
			return nil
		},
	}

	return cmd
}
