package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// generatedNamespace seeds deterministic ids for generated itineraries.
var generatedNamespace = uuid.MustParse("6f1c5e0a-3b52-4d8e-9a47-2c1d7e9b8f30")

// CandidateGenerator synthesizes itineraries from catalog building blocks.
type CandidateGenerator interface {
	Generate(ctx context.Context, criteria domain.SearchCriteria, needed int) ([]domain.Candidate, error)
}

// Generator reads one catalog snapshot per call and combines its primitives
// into itineraries that satisfy the criteria.
type Generator struct {
	catalog domain.CatalogReader
}

// NewGenerator creates a Generator backed by the given catalog.
func NewGenerator(catalog domain.CatalogReader) *Generator {
	return &Generator{catalog: catalog}
}

// Generate returns up to needed generated candidates.
// It returns domain.ErrGenerationExhausted when no combination fits.
func (g *Generator) Generate(ctx context.Context, criteria domain.SearchCriteria, needed int) ([]domain.Candidate, error) {
	if needed <= 0 {
		return nil, nil
	}

	snapshot, err := g.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	return GenerateFromSnapshot(snapshot, criteria, needed)
}

// GenerateFromSnapshot deterministically enumerates catalog combinations in
// the order location, activity group, lodging, transportation and returns the
// first needed of them.
//
// Behavior:
//   - Locations are the criteria locations known to the catalog. Without
//     location criteria the single flexible location is used and primitives
//     are not location-restricted.
//   - Activity groups hold 1 to 3 activities; the pace picks the preferred
//     size and smaller groups follow.
//   - Lodging must fit the whole party.
//   - A requested transportation option must exist; otherwise every option
//     is tried, and a catalog without options yields itineraries without one.
//   - Identical snapshot and criteria always produce identical output.
func GenerateFromSnapshot(snapshot domain.CatalogSnapshot, criteria domain.SearchCriteria, needed int) ([]domain.Candidate, error) {
	if needed <= 0 {
		return nil, nil
	}

	transports, ok := matchingTransportation(snapshot.Transportation, criteria.Transportation)
	if !ok {
		return nil, fmt.Errorf("%w: transportation %q not offered", domain.ErrGenerationExhausted, criteria.Transportation)
	}

	generated := make([]domain.Candidate, 0, needed)
	for _, location := range candidateLocations(snapshot, criteria) {
		activities := matchingActivities(snapshot.Activities, location, criteria)
		if len(activities) == 0 {
			continue
		}
		lodging := matchingLodging(snapshot.Lodging, location, criteria)
		if len(lodging) == 0 {
			continue
		}

		for _, group := range activityGroups(activities, criteria.Pace.ActivitiesPerGroup()) {
			for _, lodge := range lodging {
				for _, transport := range transports {
					generated = append(generated, buildGenerated(location, group, lodge, transport, criteria))
					if len(generated) == needed {
						return generated, nil
					}
				}
			}
		}
	}

	if len(generated) == 0 {
		return nil, domain.ErrGenerationExhausted
	}
	return generated, nil
}

// candidateLocations returns the locations to enumerate: the criteria
// locations the catalog knows, in order, or the flexible location when the
// criteria leave locations open.
func candidateLocations(snapshot domain.CatalogSnapshot, criteria domain.SearchCriteria) []string {
	if !criteria.HasLocations() {
		return []string{domain.FlexibleLocation}
	}

	known := make(map[string]struct{})
	for _, l := range snapshot.Locations {
		known[domain.CanonicalTag(l)] = struct{}{}
	}
	for _, a := range snapshot.Activities {
		known[domain.CanonicalTag(a.Location)] = struct{}{}
	}
	for _, l := range snapshot.Lodging {
		known[domain.CanonicalTag(l.Location)] = struct{}{}
	}
	delete(known, "")

	var locations []string
	for _, l := range criteria.Locations {
		if _, ok := known[l]; ok {
			locations = append(locations, l)
		}
	}
	return locations
}

// locatedAt reports whether a primitive at primitiveLocation can be used at location.
// Primitives without a location are usable anywhere.
func locatedAt(primitiveLocation, location string) bool {
	primitiveLocation = domain.CanonicalTag(primitiveLocation)
	return location == domain.FlexibleLocation || primitiveLocation == "" || primitiveLocation == location
}

func containsTag(set []string, tag string) bool {
	tag = domain.CanonicalTag(tag)
	for _, v := range set {
		if v == tag {
			return true
		}
	}
	return false
}

func matchingActivities(all []domain.CatalogActivity, location string, criteria domain.SearchCriteria) []domain.CatalogActivity {
	var matched []domain.CatalogActivity
	for _, a := range all {
		if !locatedAt(a.Location, location) {
			continue
		}
		if criteria.HasActivities() && !containsTag(criteria.Activities, a.Tag) {
			continue
		}
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ti, tj := domain.CanonicalTag(matched[i].Tag), domain.CanonicalTag(matched[j].Tag)
		if ti != tj {
			return ti < tj
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

func matchingLodging(all []domain.CatalogLodging, location string, criteria domain.SearchCriteria) []domain.CatalogLodging {
	var matched []domain.CatalogLodging
	for _, l := range all {
		if !locatedAt(l.Location, location) {
			continue
		}
		if criteria.HasLodging() && !containsTag(criteria.Lodging, l.Tag) {
			continue
		}
		if !criteria.Party.FitsWithin(l.Capacity) {
			continue
		}
		matched = append(matched, l)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].NightlyPrice != matched[j].NightlyPrice {
			return matched[i].NightlyPrice < matched[j].NightlyPrice
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

// matchingTransportation returns the options to enumerate. A nil entry stands
// for "no transportation". ok is false when a requested option is missing.
func matchingTransportation(all []domain.CatalogTransportation, requested string) ([]*domain.CatalogTransportation, bool) {
	sorted := make([]domain.CatalogTransportation, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Price != sorted[j].Price {
			return sorted[i].Price < sorted[j].Price
		}
		return sorted[i].ID < sorted[j].ID
	})

	var options []*domain.CatalogTransportation
	for i := range sorted {
		if requested != "" && domain.CanonicalTag(sorted[i].Tag) != requested {
			continue
		}
		options = append(options, &sorted[i])
	}

	if len(options) > 0 {
		return options, true
	}
	if requested != "" {
		return nil, false
	}
	return []*domain.CatalogTransportation{nil}, true
}

// activityGroups returns consecutive windows over activities, preferred size
// first, then each smaller size down to one.
func activityGroups(activities []domain.CatalogActivity, preferred int) [][]domain.CatalogActivity {
	if preferred > domain.MaxActivitiesPerItinerary {
		preferred = domain.MaxActivitiesPerItinerary
	}
	if preferred > len(activities) {
		preferred = len(activities)
	}

	var groups [][]domain.CatalogActivity
	for size := preferred; size >= 1; size-- {
		for start := 0; start+size <= len(activities); start++ {
			groups = append(groups, activities[start:start+size])
		}
	}
	return groups
}

func buildGenerated(location string, group []domain.CatalogActivity, lodge domain.CatalogLodging, transport *domain.CatalogTransportation, criteria domain.SearchCriteria) domain.Candidate {
	keyParts := []string{location}
	tags := make([]string, 0, len(group))
	places := []string{lodge.Location}
	var media []string
	activityPrice := 0.0
	for _, a := range group {
		keyParts = append(keyParts, "a:"+a.ID)
		tags = append(tags, a.Tag)
		places = append(places, a.Location)
		media = append(media, a.MediaRefs...)
		activityPrice += a.Price
	}
	keyParts = append(keyParts, "l:"+lodge.ID)

	locations := []string{location}
	if location == domain.FlexibleLocation {
		if set := domain.CanonicalSet(places); len(set) > 0 {
			locations = set
		}
	}

	nights := len(group)
	if criteria.DateRange != nil {
		nights = criteria.DateRange.Nights()
	}
	if nights < 1 {
		nights = 1
	}

	headcount := criteria.Party.Total()
	if headcount < 1 {
		headcount = 1
	}
	price := activityPrice + lodge.NightlyPrice*float64(nights)/float64(headcount)

	candidate := domain.Candidate{
		Locations:    locations,
		Activities:   domain.CanonicalSet(tags),
		Lodging:      []string{domain.CanonicalTag(lodge.Tag)},
		DurationDays: nights,
		MediaRefs:    media,
		Tags:         []string{domain.GeneratedTag},
		Origin:       domain.OriginGenerated,
		Score:        domain.GeneratedScore,
	}
	if transport != nil {
		keyParts = append(keyParts, "t:"+transport.ID)
		candidate.Transportation = domain.CanonicalTag(transport.Tag)
		price += transport.Price
	}

	candidate.ID = "gen-" + uuid.NewSHA1(generatedNamespace, []byte(strings.Join(keyParts, "|"))).String()
	candidate.Price = math.Round(price*100) / 100
	candidate.Name = generatedName(location, candidate.Activities)
	candidate.Description = fmt.Sprintf("%d-day trip with %s, staying in %s",
		nights, strings.Join(candidate.Activities, ", "), lodgingName(lodge))

	stay := domain.CanonicalTag(lodge.Location)
	if stay == "" {
		stay = candidate.Locations[0]
	}
	candidate.Days = PlanDays(nights, stay, group)
	return candidate
}

func generatedName(location string, activities []string) string {
	return fmt.Sprintf("%s %s Adventure", titleCase(location), titleCase(strings.Join(activities, " & ")))
}

func lodgingName(l domain.CatalogLodging) string {
	if l.Name != "" {
		return l.Name
	}
	return "a " + domain.CanonicalTag(l.Tag)
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
