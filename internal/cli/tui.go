package cli

import (
	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), d.search)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
