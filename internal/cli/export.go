package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
)

func NewExportCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <session>",
		Short: "Export a session's notes as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			path, err := deps.App.Sessions.Export(args[0], deps.Config.BlockSeparator)
			if err != nil {
				return err
			}
			formatter.ExportDone(path)
			return nil
		},
	}

	return cmd
}
