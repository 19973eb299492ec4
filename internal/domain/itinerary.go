package domain

import "sort"

// Origin records which source produced a candidate.
type Origin string

// Candidate origins.
const (
	OriginIndexed   Origin = "indexed"
	OriginStored    Origin = "stored"
	OriginGenerated Origin = "generated"
)

// IsGenerated reports whether the candidate was synthesized from the catalog.
func (o Origin) IsGenerated() bool {
	return o == OriginGenerated
}

// GeneratedTag is attached to every synthesized itinerary.
const GeneratedTag = "generated"

// Candidate is one itinerary recommendation in a search response.
// Candidates are built per request and never persisted.
type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Locations      []string `json:"locations"`
	Activities     []string `json:"activities"`
	Lodging        []string `json:"lodging"`
	Transportation string   `json:"transportation,omitempty"`

	// Price is per person
	Price float64 `json:"price"`

	DurationDays int      `json:"duration_days"`
	MediaRefs    []string `json:"media_refs,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Origin       Origin   `json:"origin"`

	// Days is the day-by-day plan; only generated candidates carry one
	Days []DayPlan `json:"days,omitempty"`

	// Score is recomputed on every search; higher ranks first within a provenance tier
	Score float64 `json:"score"`
}

// Itinerary is a persisted, bookable itinerary record shared by the store
// and the search index.
type Itinerary struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description,omitempty" yaml:"description"`
	Locations      []string   `json:"locations" yaml:"locations"`
	Activities     []string   `json:"activities" yaml:"activities"`
	Lodging        []string   `json:"lodging" yaml:"lodging"`
	Transportation string     `json:"transportation,omitempty" yaml:"transportation"`
	Price          float64    `json:"price" yaml:"price"`
	DurationDays   int        `json:"duration_days" yaml:"duration_days"`
	Capacity       Party      `json:"capacity" yaml:"capacity"`
	Availability   *DateRange `json:"availability,omitempty" yaml:"-"`
	MediaRefs      []string   `json:"media_refs,omitempty" yaml:"media_refs"`
}

// Canonical returns a copy with canonical tag sets.
func (it Itinerary) Canonical() Itinerary {
	it.Locations = CanonicalSet(it.Locations)
	it.Activities = CanonicalSet(it.Activities)
	it.Lodging = CanonicalSet(it.Lodging)
	it.Transportation = CanonicalTag(it.Transportation)
	return it
}

// Available reports whether the itinerary can be booked for the given range.
// A nil availability window means always available.
func (it Itinerary) Available(dates *DateRange) bool {
	if dates == nil || it.Availability == nil {
		return true
	}
	return it.Availability.Contains(*dates)
}

// ToCandidate converts a persisted itinerary into a scored candidate.
func (it Itinerary) ToCandidate(origin Origin, score float64) Candidate {
	return Candidate{
		ID:             it.ID,
		Name:           it.Name,
		Description:    it.Description,
		Locations:      cloneStrings(it.Locations),
		Activities:     cloneStrings(it.Activities),
		Lodging:        cloneStrings(it.Lodging),
		Transportation: it.Transportation,
		Price:          it.Price,
		DurationDays:   it.DurationDays,
		MediaRefs:      cloneStrings(it.MediaRefs),
		Origin:         origin,
		Score:          score,
	}
}

// SortItinerariesByID orders itineraries by id in place.
func SortItinerariesByID(items []Itinerary) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
