package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchSemantic bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the local document collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		query := args[0]

		var results []domain.SearchResult
		if searchSemantic {
			results, err = d.search.SearchSemantic(cmd.Context(), query, searchLimit)
		} else {
			results, err = d.search.SearchText(cmd.Context(), query, searchLimit)
		}
		if err != nil {
			return err
		}

		if searchJSON {
			return outputSearchJSON(cmd, results)
		}
		return outputSearchTable(cmd, results)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchSemantic, "semantic", false, "search by meaning instead of keyword")
	rootCmd.AddCommand(searchCmd)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%-36s  %-10s  %6.3f  %s\n", r.DocID, r.Date, r.Score, truncate(r.Title, 60))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
