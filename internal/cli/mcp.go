package cli

import (
	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/mcpserver"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run brume as a Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve list_documents, search_documents, get_document, and sync_documents tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		srv := mcpserver.NewServer(d.sync, d.search)
		if mcpHTTPAddr != "" {
			return srv.RunHTTP(cmd.Context(), mcpHTTPAddr)
		}
		return srv.Run(cmd.Context())
	},
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over streamable HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
