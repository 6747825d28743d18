package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the remote document collection to the local data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		summary, err := d.sync.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "listed %d, created %d, updated %d, skipped %d\n",
			summary.Listed, summary.Created, summary.Updated, summary.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
