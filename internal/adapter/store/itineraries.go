package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// UpsertItineraries inserts or replaces itineraries and their tags in one
// transaction. Tags are stored canonically.
func (s *Store) UpsertItineraries(ctx context.Context, itineraries []domain.Itinerary) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, it := range itineraries {
			if err := upsertItinerary(ctx, tx, it.Canonical()); err != nil {
				return fmt.Errorf("upserting itinerary %s: %w", it.ID, err)
			}
		}
		return nil
	})
}

func upsertItinerary(ctx context.Context, tx *sql.Tx, it domain.Itinerary) error {
	var from, to sql.NullString
	if it.Availability != nil {
		if !it.Availability.Arrival.IsZero() {
			from = sql.NullString{String: formatTime(it.Availability.Arrival), Valid: true}
		}
		if !it.Availability.Departure.IsZero() {
			to = sql.NullString{String: formatTime(it.Availability.Departure), Valid: true}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO itineraries (id, name, description, transportation, price, duration_days,
			capacity_adults, capacity_children, capacity_infants, available_from, available_to, media_refs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description,
			transportation = excluded.transportation, price = excluded.price,
			duration_days = excluded.duration_days, capacity_adults = excluded.capacity_adults,
			capacity_children = excluded.capacity_children, capacity_infants = excluded.capacity_infants,
			available_from = excluded.available_from, available_to = excluded.available_to,
			media_refs = excluded.media_refs`,
		it.ID, it.Name, it.Description, it.Transportation, it.Price, it.DurationDays,
		it.Capacity.Adults, it.Capacity.Children, it.Capacity.Infants, from, to, joinRefs(it.MediaRefs),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM itinerary_tags WHERE itinerary_id = ?`, it.ID); err != nil {
		return err
	}

	tags := []struct {
		kind   string
		values []string
	}{
		{kindLocation, it.Locations},
		{kindActivity, it.Activities},
		{kindLodging, it.Lodging},
	}
	for _, group := range tags {
		for _, tag := range group.values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO itinerary_tags (itinerary_id, kind, tag) VALUES (?, ?, ?)`,
				it.ID, group.kind, tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteItinerary removes an itinerary and its tags.
// It reports whether a row was deleted.
func (s *Store) DeleteItinerary(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM itinerary_tags WHERE itinerary_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM itineraries WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting itinerary %s: %w", id, err)
	}
	return deleted, nil
}
