package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// Seed is the content of a catalog seed file.
type Seed struct {
	Catalog     domain.CatalogSnapshot
	Itineraries []domain.Itinerary
}

// seedFile is the YAML layout of a seed file.
type seedFile struct {
	Locations      []string                       `yaml:"locations"`
	Activities     []domain.CatalogActivity       `yaml:"activities"`
	Lodging        []domain.CatalogLodging        `yaml:"lodging"`
	Transportation []domain.CatalogTransportation `yaml:"transportation"`
	Itineraries    []seedItinerary                `yaml:"itineraries"`
}

type seedItinerary struct {
	domain.Itinerary `yaml:",inline"`

	// AvailableFrom and AvailableTo accept the request date formats
	AvailableFrom string `yaml:"available_from"`
	AvailableTo   string `yaml:"available_to"`
}

// LoadSeedFile reads and parses a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed parses YAML seed content.
func ParseSeed(data []byte) (*Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	seed := &Seed{
		Catalog: domain.CatalogSnapshot{
			Locations:      file.Locations,
			Activities:     file.Activities,
			Lodging:        file.Lodging,
			Transportation: file.Transportation,
		},
		Itineraries: make([]domain.Itinerary, 0, len(file.Itineraries)),
	}

	seen := make(map[string]bool, len(file.Itineraries))
	for _, entry := range file.Itineraries {
		it := entry.Itinerary
		if it.ID == "" {
			return nil, fmt.Errorf("itinerary %q has no id", it.Name)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate itinerary id %s", it.ID)
		}
		seen[it.ID] = true

		if it.Capacity.Adults == 0 {
			it.Capacity.Adults = 1
		}

		availability, err := parseAvailability(entry.AvailableFrom, entry.AvailableTo)
		if err != nil {
			return nil, fmt.Errorf("itinerary %s: %w", it.ID, err)
		}
		it.Availability = availability
		seed.Itineraries = append(seed.Itineraries, it)
	}

	domain.SortItinerariesByID(seed.Itineraries)
	return seed, nil
}

func parseAvailability(from, to string) (*domain.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}

	window := &domain.DateRange{Departure: openEnd}
	if from != "" {
		t, err := timeutil.ParseDate(from)
		if err != nil {
			return nil, fmt.Errorf("available_from: %w", err)
		}
		window.Arrival = t
	}
	if to != "" {
		t, err := timeutil.ParseDate(to)
		if err != nil {
			return nil, fmt.Errorf("available_to: %w", err)
		}
		window.Departure = t
	}
	if !window.Arrival.Before(window.Departure) {
		return nil, fmt.Errorf("available_from must be before available_to")
	}
	return window, nil
}

// Apply writes the seed catalog and itineraries to the store.
func (s *Store) Apply(ctx context.Context, seed *Seed) error {
	if err := s.UpsertCatalog(ctx, seed.Catalog); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	if err := s.UpsertItineraries(ctx, seed.Itineraries); err != nil {
		return fmt.Errorf("seeding itineraries: %w", err)
	}
	s.log.Info().
		Int("itineraries", len(seed.Itineraries)).
		Int("activities", len(seed.Catalog.Activities)).
		Int("lodging", len(seed.Catalog.Lodging)).
		Msg("seed applied")
	return nil
}
