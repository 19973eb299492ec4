package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load a YAML catalog into the store and the search index",
	Long: `Seed reads a YAML catalog of locations, activities, lodging, transportation
and curated itineraries, upserts it into the SQLite store and indexes the
itineraries. Running it twice with the same file is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	seed, err := a.SeedFromFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	catalog := seed.Catalog
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %s\n", args[0])
	fmt.Fprintf(out, "  locations:      %d\n", len(catalog.Locations))
	fmt.Fprintf(out, "  activities:     %d\n", len(catalog.Activities))
	fmt.Fprintf(out, "  lodging:        %d\n", len(catalog.Lodging))
	fmt.Fprintf(out, "  transportation: %d\n", len(catalog.Transportation))
	fmt.Fprintf(out, "  itineraries:    %d\n", len(seed.Itineraries))
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
