package domain

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

// IndexSearcher queries the full-text search index.
// Implementations return scores normalized to [0,1], an empty slice with a
// nil error for zero matches, and *IndexError for failures.
type IndexSearcher interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Candidate, error)
}

// ItineraryStore applies criteria as a structured predicate over persisted
// itineraries. Failures wrap ErrStore.
type ItineraryStore interface {
	Query(ctx context.Context, criteria SearchCriteria) ([]Candidate, error)
}

// CatalogReader reads a consistent snapshot of catalog building blocks.
type CatalogReader interface {
	Snapshot(ctx context.Context) (CatalogSnapshot, error)
}

// SearchRecorder persists a summary of a completed search.
type SearchRecorder interface {
	Record(ctx context.Context, record SearchRecord) error
}
