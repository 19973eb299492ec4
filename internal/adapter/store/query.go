package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

const itineraryColumns = `i.id, i.name, i.description, i.transportation, i.price, i.duration_days,
	i.capacity_adults, i.capacity_children, i.capacity_infants,
	i.available_from, i.available_to, i.media_refs`

// Query implements domain.ItineraryStore.
//
// Non-empty tag dimensions require a shared tag, the party must fit the
// capacity, and a date range must lie inside the availability window where
// missing bounds are open. Rows are ranked by their domain.StoreBaseScore
// before the MaxResults cut, so the cap never drops a stronger match.
// Equal scores are ordered by id.
func (s *Store) Query(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Candidate, error) {
	where := []string{
		"i.capacity_adults >= ?",
		"i.capacity_children >= ?",
		"i.capacity_infants >= ?",
	}
	args := []interface{}{criteria.Party.Adults, criteria.Party.Children, criteria.Party.Infants}

	addTagFilter := func(kind string, tags []string) {
		if len(tags) == 0 {
			return
		}
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM itinerary_tags t WHERE t.itinerary_id = i.id AND t.kind = ? AND t.tag IN (%s))",
			placeholders(len(tags))))
		args = append(args, kind)
		for _, tag := range tags {
			args = append(args, tag)
		}
	}
	addTagFilter(kindLocation, criteria.Locations)
	addTagFilter(kindActivity, criteria.Activities)
	addTagFilter(kindLodging, criteria.Lodging)

	if criteria.DateRange != nil {
		where = append(where,
			"(i.available_from IS NULL OR i.available_from <= ?)",
			"(i.available_to IS NULL OR i.available_to >= ?)")
		args = append(args, formatTime(criteria.DateRange.Arrival), formatTime(criteria.DateRange.Departure))
	}

	order, orderArgs := rankOrder(criteria)
	query := "SELECT " + itineraryColumns + " FROM itineraries i WHERE " +
		strings.Join(where, " AND ") + " ORDER BY " + order + " LIMIT ?"
	args = append(args, orderArgs...)
	args = append(args, s.maxResults)

	itineraries, err := s.selectItineraries(ctx, s.db, query, args...)
	if err != nil {
		return nil, domain.WrapStoreError("query itineraries", err)
	}

	candidates := make([]domain.Candidate, len(itineraries))
	for i, it := range itineraries {
		candidates[i] = it.ToCandidate(domain.OriginStored, domain.StoreBaseScore(criteria, it))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})

	s.log.Debug().Int("results", len(candidates)).Msg("store query complete")
	return candidates, nil
}

// rankOrder orders rows that passed the Query filters by descending
// domain.StoreBaseScore. Constrained tag and date dimensions are enforced by
// the WHERE clause and match on every row, so only transportation varies the
// score. Stored transportation is canonical.
func rankOrder(criteria domain.SearchCriteria) (string, []interface{}) {
	if criteria.Transportation == "" {
		return "i.id", nil
	}
	return "(i.transportation = ?) DESC, i.id", []interface{}{criteria.Transportation}
}

// ListItineraries returns every persisted itinerary ordered by id.
func (s *Store) ListItineraries(ctx context.Context) ([]domain.Itinerary, error) {
	query := "SELECT " + itineraryColumns + " FROM itineraries i ORDER BY i.id"
	itineraries, err := s.selectItineraries(ctx, s.db, query)
	if err != nil {
		return nil, domain.WrapStoreError("list itineraries", err)
	}
	return itineraries, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// selectItineraries runs query, scans itinerary rows and attaches their tags.
func (s *Store) selectItineraries(ctx context.Context, q queryer, query string, args ...interface{}) ([]domain.Itinerary, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating itineraries: %w", err)
	}
	rows.Close()

	if err := s.attachTags(ctx, q, itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func scanItinerary(rows *sql.Rows) (domain.Itinerary, error) {
	var (
		it       domain.Itinerary
		from, to sql.NullString
		media    string
	)
	if err := rows.Scan(
		&it.ID, &it.Name, &it.Description, &it.Transportation, &it.Price, &it.DurationDays,
		&it.Capacity.Adults, &it.Capacity.Children, &it.Capacity.Infants,
		&from, &to, &media,
	); err != nil {
		return domain.Itinerary{}, fmt.Errorf("scanning itinerary: %w", err)
	}
	it.MediaRefs = splitRefs(media)

	fromTime, hasFrom, err := parseTime(from)
	if err != nil {
		return domain.Itinerary{}, err
	}
	toTime, hasTo, err := parseTime(to)
	if err != nil {
		return domain.Itinerary{}, err
	}
	if hasFrom || hasTo {
		it.Availability = &domain.DateRange{Arrival: fromTime, Departure: toTime}
		if !hasTo {
			it.Availability.Departure = openEnd
		}
	}
	return it, nil
}

// attachTags loads location, activity and lodging tags for itineraries.
func (s *Store) attachTags(ctx context.Context, q queryer, itineraries []domain.Itinerary) error {
	if len(itineraries) == 0 {
		return nil
	}

	position := make(map[string]int, len(itineraries))
	args := make([]interface{}, len(itineraries))
	for i, it := range itineraries {
		position[it.ID] = i
		args[i] = it.ID
		itineraries[i].Locations = []string{}
		itineraries[i].Activities = []string{}
		itineraries[i].Lodging = []string{}
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf(
		`SELECT itinerary_id, kind, tag FROM itinerary_tags WHERE itinerary_id IN (%s) ORDER BY itinerary_id, kind, tag`,
		placeholders(len(args))), args...)
	if err != nil {
		return fmt.Errorf("selecting itinerary tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, kind, tag string
		if err := rows.Scan(&id, &kind, &tag); err != nil {
			return fmt.Errorf("scanning itinerary tag: %w", err)
		}
		i, ok := position[id]
		if !ok {
			continue
		}
		switch kind {
		case kindLocation:
			itineraries[i].Locations = append(itineraries[i].Locations, tag)
		case kindActivity:
			itineraries[i].Activities = append(itineraries[i].Activities, tag)
		case kindLodging:
			itineraries[i].Lodging = append(itineraries[i].Lodging, tag)
		}
	}
	return rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
