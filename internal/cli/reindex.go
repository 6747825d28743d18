package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the text index, vector store, and metadata cache from the on-disk rendered tree",
	Long: `reindex walks the existing rendered-document tree and re-upserts every
document into the text index, vector store, and metadata cache, without
contacting the remote. Useful after deleting an index directory or after
restoring documents from a backup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		summary, err := d.sync.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d documents\n", summary.Listed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
