package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run an itinerary search against local data",
	Long: `Search runs the same resolution as the HTTP API: the search index first, the
catalog store when the index under-performs and generation from catalog
building blocks when the result is still short.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	req, err := searchRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.Search.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), resp, jsonOutput)
}

// searchRequestFromFlags builds a request from the search flags. Counts are
// only set when their flag was given so defaults apply downstream.
func searchRequestFromFlags(cmd *cobra.Command) (domain.SearchRequest, error) {
	flags := cmd.Flags()
	var req domain.SearchRequest

	req.Locations, _ = flags.GetStringSlice("location")
	req.Activities, _ = flags.GetStringSlice("activity")
	req.Lodging, _ = flags.GetStringSlice("lodging")
	req.Transportation, _ = flags.GetString("transportation")
	req.Pace, _ = flags.GetString("pace")
	req.Arrival, _ = flags.GetString("arrival")
	req.Departure, _ = flags.GetString("departure")

	for name, dst := range map[string]**int{
		"adults":   &req.Adults,
		"children": &req.Children,
		"infants":  &req.Infants,
	} {
		if !flags.Changed(name) {
			continue
		}
		n, err := flags.GetInt(name)
		if err != nil {
			return domain.SearchRequest{}, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = &n
	}
	return req, nil
}

func formatSearchOutput(out io.Writer, resp *domain.SearchResponse, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.Itineraries) == 0 {
		fmt.Fprintln(out, "No itineraries found.")
		return nil
	}

	fmt.Fprintf(out, "%-4s  %-24s  %-40s  %-9s  %5s  %8s  %4s\n",
		"Rank", "ID", "Name", "Origin", "Score", "Price", "Days")
	fmt.Fprintln(out, strings.Repeat("-", 106))

	for i, c := range resp.Itineraries {
		fmt.Fprintf(out, "%-4d  %-24s  %-40s  %-9s  %5.2f  %8.2f  %4d\n",
			i+1, truncate(c.ID, 24), truncate(c.Name, 40), c.Origin, c.Score, c.Price, c.DurationDays)
	}

	m := resp.Metadata
	fmt.Fprintf(out, "\n%d results (indexed %d, stored %d, generated %d); index %s after %d attempt(s) in %dms\n",
		m.TotalResults, m.IndexedCount, m.StoredCount, m.GeneratedCount, m.IndexStatus, m.IndexAttempts, m.SearchTimeMs)
	if m.GenerationExhausted {
		fmt.Fprintln(out, "The catalog could not fill the minimum result count.")
	}
	if m.CatalogUnavailable {
		fmt.Fprintln(out, "The catalog could not be read; no itineraries were generated.")
	}
	fmt.Fprintf(out, "search id: %s\n", resp.SearchID)
	return nil
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// addSearchFlags registers the criteria flags read by searchRequestFromFlags.
func addSearchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSlice("location", nil, "location names (repeatable or comma-separated)")
	flags.StringSlice("activity", nil, "activity tags (repeatable or comma-separated)")
	flags.StringSlice("lodging", nil, "lodging tags (repeatable or comma-separated)")
	flags.String("transportation", "", "preferred transportation tag")
	flags.String("pace", "", "trip pace: relaxed, moderate or adventure")
	flags.String("arrival", "", "trip start (YYYY-MM-DD or RFC3339)")
	flags.String("departure", "", "trip end (YYYY-MM-DD or RFC3339)")
	flags.Int("adults", 1, "number of adults")
	flags.Int("children", 0, "number of children")
	flags.Int("infants", 0, "number of infants")
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().Bool("json", false, "output the response as JSON")

	rootCmd.AddCommand(searchCmd)
}
