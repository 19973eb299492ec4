package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripfinder/itinerary-search-service/internal/adapter/searchlog"
	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

var searchesCmd = &cobra.Command{
	Use:   "searches",
	Short: "List recently recorded searches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSearches,
}

func runSearches(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.SearchLog == nil {
		return fmt.Errorf("the search log is disabled (SEARCHLOG_ENABLED=false)")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := a.SearchLog.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchesOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatSearchesOutput(out io.Writer, records []domain.SearchRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-20s  %-36s  %-30s  %5s  %-11s  %8s\n",
		"When", "Search ID", "Locations", "Total", "Index", "Duration")
	fmt.Fprintln(out, strings.Repeat("-", 120))

	for _, r := range records {
		locations := strings.Join(r.Criteria.Locations, ",")
		if locations == "" {
			locations = "(any)"
		}
		fmt.Fprintf(out, "%-20s  %-36s  %-30s  %5d  %-11s  %6dms\n",
			r.CreatedAt.Format(time.DateTime), r.ID, truncate(locations, 30),
			len(r.ResultIDs), r.IndexStatus, r.DurationMs)
	}

	fmt.Fprintf(out, "\n%d searches\n", len(records))
	return nil
}

func init() {
	searchesCmd.Flags().Int("limit", searchlog.DefaultRecentLimit, "maximum number of searches to list")
	searchesCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(searchesCmd)
}
