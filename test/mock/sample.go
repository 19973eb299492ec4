package mock

import (
	"fmt"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// SampleCandidates returns count candidates with descending scores. IDs are
// prefix-1, prefix-2, and so on.
func SampleCandidates(prefix string, count int) []domain.Candidate {
	candidates := make([]domain.Candidate, count)
	for i := 0; i < count; i++ {
		candidates[i] = domain.Candidate{
			ID:           fmt.Sprintf("%s-%d", prefix, i+1),
			Name:         fmt.Sprintf("Sample itinerary %d", i+1),
			Locations:    []string{"denali"},
			Activities:   []string{"hiking"},
			Lodging:      []string{"cabin"},
			Price:        800 + float64(i*100),
			DurationDays: 3 + i,
			Score:        0.9 - float64(i)*0.05,
		}
	}
	return candidates
}

// SampleSnapshot returns a small catalog for one location. It can generate
// at least two itineraries for hiking in denali.
func SampleSnapshot() domain.CatalogSnapshot {
	return domain.CatalogSnapshot{
		Locations: []string{"denali"},
		Activities: []domain.CatalogActivity{
			{ID: "act-1", Tag: "hiking", Name: "Ridge Hike", Location: "denali", Price: 60, DurationHours: 5},
			{ID: "act-2", Tag: "hiking", Name: "Savage River Loop", Location: "denali", Price: 0, DurationHours: 2},
			{ID: "act-3", Tag: "wildlife", Name: "Park Road Bus", Location: "denali", Price: 120, DurationHours: 8},
		},
		Lodging: []domain.CatalogLodging{
			{ID: "lod-1", Tag: "cabin", Name: "Creekside Cabins", Location: "denali", NightlyPrice: 180, Capacity: domain.Party{Adults: 4, Children: 2, Infants: 1}},
			{ID: "lod-2", Tag: "lodge", Name: "Canyon Lodge", Location: "denali", NightlyPrice: 240, Capacity: domain.Party{Adults: 2}},
		},
		Transportation: []domain.CatalogTransportation{
			{ID: "tr-1", Tag: "train", Name: "Train", Price: 110},
		},
	}
}
