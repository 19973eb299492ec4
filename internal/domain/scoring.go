package domain

// Store-origin scoring constants.
// Store results land between the weakest and strongest index matches:
// they never outrank a top index hit (1.0) but outrank weak ones.
const (
	// StoreScoreBase is the score of a store result matching only the party minimum.
	StoreScoreBase = 0.5

	// StoreScoreStep is added per optional criteria dimension matched.
	StoreScoreStep = 0.1

	// StoreScoreCap bounds store scores below a perfect index match.
	StoreScoreCap = 0.9

	// GeneratedScore is assigned to every synthesized candidate.
	GeneratedScore = 0.1

	// AcceptanceFloor is the minimum score kept after merging. Nothing is
	// dropped by score; the floor exists so it can be tuned explicitly.
	AcceptanceFloor = 0.0
)

// MatchedDimensions counts the optional criteria dimensions the traveler
// constrained and the itinerary satisfies. Party capacity is the minimum
// requirement and is never counted.
//
// Dimensions:
//   - locations: criteria and itinerary locations intersect
//   - activities: criteria and itinerary activities intersect
//   - lodging: criteria and itinerary lodging intersect
//   - date range: availability window contains the requested stay
//   - transportation: itinerary offers the requested option
func MatchedDimensions(c SearchCriteria, it Itinerary) int {
	matched := 0
	if c.HasLocations() && Intersects(c.Locations, it.Locations) {
		matched++
	}
	if c.HasActivities() && Intersects(c.Activities, it.Activities) {
		matched++
	}
	if c.HasLodging() && Intersects(c.Lodging, it.Lodging) {
		matched++
	}
	if c.DateRange != nil && it.Available(c.DateRange) {
		matched++
	}
	if c.Transportation != "" && CanonicalTag(it.Transportation) == c.Transportation {
		matched++
	}
	return matched
}

// StoreBaseScore returns the deterministic score for a store-origin result:
// 0.5 + 0.1 per matched dimension, capped at 0.9.
func StoreBaseScore(c SearchCriteria, it Itinerary) float64 {
	score := StoreScoreBase + StoreScoreStep*float64(MatchedDimensions(c, it))
	if score > StoreScoreCap {
		return StoreScoreCap
	}
	return score
}

// NormalizeScores min-max scales raw relevance scores into [0,1].
// A single score, or a batch of equal scores, maps to 1.0.
func NormalizeScores(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}

	lo, hi := raw[0], raw[0]
	for _, s := range raw[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	for i, s := range raw {
		if hi == lo {
			out[i] = 1.0
			continue
		}
		out[i] = (s - lo) / (hi - lo)
	}
	return out
}
