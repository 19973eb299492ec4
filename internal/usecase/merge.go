package usecase

import (
	"sort"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// MergeCandidates combines index and store results into one ranked list.
//
// Behavior:
//   - Deduplicates by id. When an id appears in both sets the index entry
//     wins: its score is kept and its origin is Indexed.
//   - Drops candidates scoring below domain.AcceptanceFloor (0.0, so nothing
//     is dropped unless the floor is raised).
//   - Orders the result with SortCandidates.
//   - Does NOT mutate either input slice.
func MergeCandidates(indexed, stored []domain.Candidate) []domain.Candidate {
	merged := make([]domain.Candidate, 0, len(indexed)+len(stored))
	position := make(map[string]int, len(indexed)+len(stored))

	for _, c := range indexed {
		c.Origin = domain.OriginIndexed
		if i, ok := position[c.ID]; ok {
			if c.Score > merged[i].Score {
				merged[i] = c
			}
			continue
		}
		position[c.ID] = len(merged)
		merged = append(merged, c)
	}

	for _, c := range stored {
		if _, ok := position[c.ID]; ok {
			continue
		}
		c.Origin = domain.OriginStored
		position[c.ID] = len(merged)
		merged = append(merged, c)
	}

	accepted := merged[:0]
	for _, c := range merged {
		if c.Score >= domain.AcceptanceFloor {
			accepted = append(accepted, c)
		}
	}

	return SortCandidates(accepted)
}

// AppendGenerated adds generated candidates after the ranked real results.
// Generated ids already present are skipped so ids stay unique.
func AppendGenerated(ranked, generated []domain.Candidate) []domain.Candidate {
	result := make([]domain.Candidate, 0, len(ranked)+len(generated))
	result = append(result, ranked...)

	seen := make(map[string]struct{}, len(result))
	for _, c := range result {
		seen[c.ID] = struct{}{}
	}
	for _, c := range generated {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		result = append(result, c)
	}

	return SortCandidates(result)
}

// SortCandidates returns a sorted copy of candidates.
//
// Order:
//  1. real (indexed or stored) before generated
//  2. score, descending
//  3. price, ascending
//  4. id, ascending, so the order is total and reproducible
func SortCandidates(candidates []domain.Candidate) []domain.Candidate {
	result := make([]domain.Candidate, len(candidates))
	copy(result, candidates)

	if len(result) > 1 {
		sort.SliceStable(result, func(i, j int) bool {
			return candidateLess(result[i], result[j])
		})
	}
	return result
}

func candidateLess(a, b domain.Candidate) bool {
	if ga, gb := a.Origin.IsGenerated(), b.Origin.IsGenerated(); ga != gb {
		return gb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.ID < b.ID
}
