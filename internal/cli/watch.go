package cli

import (
	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the rendered document tree and reindex on change",
	Long: `watch runs a debounced fsnotify loop over the rendered document tree and
triggers a reindex whenever a .md file changes, without contacting the
remote. Run this alongside an external sync loop, or just after sync
while editing rendered documents by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		return watch.Run(cmd.Context(), d.paths.Rendered, d.sync)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
