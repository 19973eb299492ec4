package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Snapshot implements domain.CatalogReader. All four primitive sets are read
// inside one read-only transaction so the generator sees a consistent catalog.
func (s *Store) Snapshot(ctx context.Context) (domain.CatalogSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("begin snapshot", err)
	}
	defer tx.Rollback()

	var snapshot domain.CatalogSnapshot
	if snapshot.Locations, err = readLocations(ctx, tx); err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("read locations", err)
	}
	if snapshot.Activities, err = readActivities(ctx, tx); err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("read activities", err)
	}
	if snapshot.Lodging, err = readLodging(ctx, tx); err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("read lodging", err)
	}
	if snapshot.Transportation, err = readTransportation(ctx, tx); err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("read transportation", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.CatalogSnapshot{}, domain.WrapStoreError("commit snapshot", err)
	}
	return snapshot, nil
}

func readLocations(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM catalog_locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		locations = append(locations, name)
	}
	return locations, rows.Err()
}

func readActivities(ctx context.Context, tx *sql.Tx) ([]domain.CatalogActivity, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, tag, name, location, price, duration_hours, media_refs FROM catalog_activities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.CatalogActivity
	for rows.Next() {
		var a domain.CatalogActivity
		var media string
		if err := rows.Scan(&a.ID, &a.Tag, &a.Name, &a.Location, &a.Price, &a.DurationHours, &media); err != nil {
			return nil, err
		}
		a.MediaRefs = splitRefs(media)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func readLodging(ctx context.Context, tx *sql.Tx) ([]domain.CatalogLodging, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, tag, name, location, nightly_price, capacity_adults, capacity_children, capacity_infants
		FROM catalog_lodging ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lodging []domain.CatalogLodging
	for rows.Next() {
		var l domain.CatalogLodging
		if err := rows.Scan(&l.ID, &l.Tag, &l.Name, &l.Location, &l.NightlyPrice,
			&l.Capacity.Adults, &l.Capacity.Children, &l.Capacity.Infants); err != nil {
			return nil, err
		}
		lodging = append(lodging, l)
	}
	return lodging, rows.Err()
}

func readTransportation(ctx context.Context, tx *sql.Tx) ([]domain.CatalogTransportation, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, tag, name, price FROM catalog_transportation ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.CatalogTransportation
	for rows.Next() {
		var t domain.CatalogTransportation
		if err := rows.Scan(&t.ID, &t.Tag, &t.Name, &t.Price); err != nil {
			return nil, err
		}
		options = append(options, t)
	}
	return options, rows.Err()
}

// UpsertCatalog inserts or replaces catalog primitives in one transaction.
// Tags and locations are stored canonically.
func (s *Store) UpsertCatalog(ctx context.Context, catalog domain.CatalogSnapshot) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, name := range domain.CanonicalSet(catalog.Locations) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_locations (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
				return fmt.Errorf("upserting location %s: %w", name, err)
			}
		}

		for _, a := range catalog.Activities {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_activities (id, tag, name, location, price, duration_hours, media_refs)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET tag = excluded.tag, name = excluded.name, location = excluded.location,
					price = excluded.price, duration_hours = excluded.duration_hours, media_refs = excluded.media_refs`,
				a.ID, domain.CanonicalTag(a.Tag), a.Name, domain.CanonicalTag(a.Location), a.Price, a.DurationHours,
				joinRefs(a.MediaRefs)); err != nil {
				return fmt.Errorf("upserting activity %s: %w", a.ID, err)
			}
		}

		for _, l := range catalog.Lodging {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_lodging (id, tag, name, location, nightly_price, capacity_adults, capacity_children, capacity_infants)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET tag = excluded.tag, name = excluded.name, location = excluded.location,
					nightly_price = excluded.nightly_price, capacity_adults = excluded.capacity_adults,
					capacity_children = excluded.capacity_children, capacity_infants = excluded.capacity_infants`,
				l.ID, domain.CanonicalTag(l.Tag), l.Name, domain.CanonicalTag(l.Location), l.NightlyPrice,
				l.Capacity.Adults, l.Capacity.Children, l.Capacity.Infants); err != nil {
				return fmt.Errorf("upserting lodging %s: %w", l.ID, err)
			}
		}

		for _, t := range catalog.Transportation {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_transportation (id, tag, name, price) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET tag = excluded.tag, name = excluded.name, price = excluded.price`,
				t.ID, domain.CanonicalTag(t.Tag), t.Name, t.Price); err != nil {
				return fmt.Errorf("upserting transportation %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// inTx runs fn in a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
