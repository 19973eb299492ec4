// Package domain contains the core entities and rules for itinerary search.
// Types here are storage-agnostic: the index, the store and the generator all
// speak SearchCriteria in and Candidate out.
package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// TripPace describes how packed a generated itinerary should be.
type TripPace string

// Supported trip paces. The zero value means no preference.
const (
	PaceUnspecified TripPace = ""
	PaceRelaxed     TripPace = "relaxed"
	PaceModerate    TripPace = "moderate"
	PaceAdventure   TripPace = "adventure"
)

// IsValid reports whether p is a known pace or unspecified.
func (p TripPace) IsValid() bool {
	switch p {
	case PaceUnspecified, PaceRelaxed, PaceModerate, PaceAdventure:
		return true
	}
	return false
}

// ActivitiesPerGroup returns the preferred number of activities bundled into
// one generated itinerary.
func (p TripPace) ActivitiesPerGroup() int {
	switch p {
	case PaceRelaxed:
		return 1
	case PaceModerate:
		return 2
	default:
		return MaxActivitiesPerItinerary
	}
}

// MaxActivitiesPerItinerary bounds the activities a generated itinerary may bundle.
const MaxActivitiesPerItinerary = 3

// Party is the traveler composition of a request, or the capacity of an
// itinerary or lodging option.
type Party struct {
	Adults   int `json:"adults" yaml:"adults"`
	Children int `json:"children" yaml:"children"`
	Infants  int `json:"infants" yaml:"infants"`
}

// Total returns the headcount.
func (p Party) Total() int {
	return p.Adults + p.Children + p.Infants
}

// FitsWithin reports whether the party fits the given capacity in every bracket.
func (p Party) FitsWithin(capacity Party) bool {
	return capacity.Adults >= p.Adults &&
		capacity.Children >= p.Children &&
		capacity.Infants >= p.Infants
}

// DateRange is a half-open stay from Arrival to Departure.
type DateRange struct {
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
}

// Nights returns the number of calendar nights in the range.
func (d DateRange) Nights() int {
	return timeutil.NightsBetween(d.Arrival, d.Departure)
}

// Contains reports whether other lies entirely inside d.
func (d DateRange) Contains(other DateRange) bool {
	return !other.Arrival.Before(d.Arrival) && !other.Departure.After(d.Departure)
}

// SearchCriteria is the normalized, validated form of a search request.
// Set-valued fields are canonical (lower-case, trimmed, unique, sorted);
// an empty set means unconstrained.
type SearchCriteria struct {
	Locations      []string   `json:"locations"`
	DateRange      *DateRange `json:"date_range,omitempty"`
	Party          Party      `json:"party"`
	Activities     []string   `json:"activities"`
	Lodging        []string   `json:"lodging"`
	Transportation string     `json:"transportation,omitempty"`
	Pace           TripPace   `json:"pace,omitempty"`
}

// HasLocations reports whether the criteria restrict locations.
func (c SearchCriteria) HasLocations() bool { return len(c.Locations) > 0 }

// HasActivities reports whether the criteria restrict activities.
func (c SearchCriteria) HasActivities() bool { return len(c.Activities) > 0 }

// HasLodging reports whether the criteria restrict lodging.
func (c SearchCriteria) HasLodging() bool { return len(c.Lodging) > 0 }

// Key returns a stable textual form of the criteria, suitable for hashing.
func (c SearchCriteria) Key() string {
	var b strings.Builder
	b.WriteString("loc=")
	b.WriteString(strings.Join(c.Locations, ","))
	b.WriteString("|act=")
	b.WriteString(strings.Join(c.Activities, ","))
	b.WriteString("|lod=")
	b.WriteString(strings.Join(c.Lodging, ","))
	b.WriteString("|tr=")
	b.WriteString(c.Transportation)
	if c.DateRange != nil {
		fmt.Fprintf(&b, "|dates=%s/%s", c.DateRange.Arrival.Format(time.RFC3339), c.DateRange.Departure.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "|party=%d/%d/%d|pace=%s", c.Party.Adults, c.Party.Children, c.Party.Infants, c.Pace)
	return b.String()
}

// SearchRequest is the raw inbound search request. Pointer fields distinguish
// "omitted" from an explicit zero.
type SearchRequest struct {
	// Locations are city or region names, e.g. "Fairbanks"
	Locations []string `json:"locations,omitempty" example:"Fairbanks,Denali"`

	// Arrival is the trip start (YYYY-MM-DD or RFC3339)
	Arrival string `json:"arrival,omitempty" example:"2026-07-01"`

	// Departure is the trip end (YYYY-MM-DD or RFC3339)
	Departure string `json:"departure,omitempty" example:"2026-07-05"`

	// Adults defaults to 1 when omitted
	Adults *int `json:"adults,omitempty" example:"2"`

	Children *int `json:"children,omitempty" example:"0"`
	Infants  *int `json:"infants,omitempty" example:"0"`

	// Activities are activity tags, e.g. "Hiking"
	Activities []string `json:"activities,omitempty" example:"Hiking,Fishing"`

	// Lodging are lodging tags, e.g. "Cabin"
	Lodging []string `json:"lodging,omitempty" example:"Cabin"`

	// Transportation is an optional transportation tag, e.g. "Rental Car"
	Transportation string `json:"transportation,omitempty" example:"Rental Car"`

	// Pace is one of relaxed, moderate, adventure
	Pace string `json:"pace,omitempty" example:"moderate"`
}

// NormalizeCriteria validates a raw request and converts it into canonical
// SearchCriteria. It has no side effects. On failure it returns a
// *ValidationError naming the first offending field.
func NormalizeCriteria(req SearchRequest) (SearchCriteria, error) {
	party, err := normalizeParty(req)
	if err != nil {
		return SearchCriteria{}, err
	}

	dates, err := normalizeDates(req.Arrival, req.Departure)
	if err != nil {
		return SearchCriteria{}, err
	}

	pace := TripPace(CanonicalTag(req.Pace))
	if !pace.IsValid() {
		return SearchCriteria{}, NewValidationError("pace", fmt.Sprintf("must be one of relaxed, moderate, adventure; got %q", req.Pace))
	}

	return SearchCriteria{
		Locations:      CanonicalSet(req.Locations),
		DateRange:      dates,
		Party:          party,
		Activities:     CanonicalSet(req.Activities),
		Lodging:        CanonicalSet(req.Lodging),
		Transportation: CanonicalTag(req.Transportation),
		Pace:           pace,
	}, nil
}

func normalizeParty(req SearchRequest) (Party, error) {
	party := Party{Adults: 1}

	if req.Adults != nil {
		if *req.Adults < 1 {
			return Party{}, NewValidationError("adults", "must be at least 1")
		}
		party.Adults = *req.Adults
	}
	if req.Children != nil {
		if *req.Children < 0 {
			return Party{}, NewValidationError("children", "must not be negative")
		}
		party.Children = *req.Children
	}
	if req.Infants != nil {
		if *req.Infants < 0 {
			return Party{}, NewValidationError("infants", "must not be negative")
		}
		party.Infants = *req.Infants
	}

	return party, nil
}

func normalizeDates(arrival, departure string) (*DateRange, error) {
	arrival = strings.TrimSpace(arrival)
	departure = strings.TrimSpace(departure)

	switch {
	case arrival == "" && departure == "":
		return nil, nil
	case arrival == "":
		return nil, NewValidationError("arrival", "required when departure is set")
	case departure == "":
		return nil, NewValidationError("departure", "required when arrival is set")
	}

	from, err := timeutil.ParseDate(arrival)
	if err != nil {
		return nil, NewValidationError("arrival", err.Error())
	}
	to, err := timeutil.ParseDate(departure)
	if err != nil {
		return nil, NewValidationError("departure", err.Error())
	}
	if !from.Before(to) {
		return nil, NewValidationError("departure", "must be after arrival")
	}

	return &DateRange{Arrival: from, Departure: to}, nil
}

// CanonicalTag trims, collapses inner whitespace and lower-cases a tag.
func CanonicalTag(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

// CanonicalSet canonicalizes every value, drops empties and duplicates, and
// returns the result sorted. It never returns nil.
func CanonicalSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		tag := CanonicalTag(v)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Intersects reports whether a and b share a canonical value.
func Intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[CanonicalTag(v)] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[CanonicalTag(v)]; ok {
			return true
		}
	}
	return false
}
