package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from the catalog store",
	Long: `Reindex reads every itinerary from the SQLite store and writes it to the
Bleve index, replacing documents with the same id.`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Reindex(cmd.Context())
	if err != nil {
		return err
	}

	total, err := a.Index.DocCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d itineraries (%d documents in index)\n", n, total)
	return nil
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
