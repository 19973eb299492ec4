package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Store is a configurable mock of the structured store. It answers both
// fallback queries and catalog snapshots.
type Store struct {
	candidates []domain.Candidate
	snapshot   domain.CatalogSnapshot
	err        error
	delay      time.Duration

	queryCount    int
	snapshotCount int
	mu            sync.Mutex
}

// NewStore creates a mock store with no data.
func NewStore() *Store {
	return &Store{}
}

// WithCandidates configures the fallback query result.
func (s *Store) WithCandidates(candidates []domain.Candidate) *Store {
	s.candidates = candidates
	return s
}

// WithSnapshot configures the catalog snapshot.
func (s *Store) WithSnapshot(snapshot domain.CatalogSnapshot) *Store {
	s.snapshot = snapshot
	return s
}

// WithError makes every query and snapshot fail with err wrapped as a
// store failure.
func (s *Store) WithError(err error) *Store {
	s.err = domain.WrapStoreError("mock", err)
	return s
}

// WithDelay configures the store to wait before responding.
func (s *Store) WithDelay(d time.Duration) *Store {
	s.delay = d
	return s
}

// Query implements domain.ItineraryStore.Query.
func (s *Store) Query(ctx context.Context, _ domain.SearchCriteria) ([]domain.Candidate, error) {
	s.mu.Lock()
	s.queryCount++
	s.mu.Unlock()

	if err := wait(ctx, s.delay); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return withOrigin(s.candidates, domain.OriginStored), nil
}

// Snapshot implements domain.CatalogReader.Snapshot.
func (s *Store) Snapshot(ctx context.Context) (domain.CatalogSnapshot, error) {
	s.mu.Lock()
	s.snapshotCount++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.CatalogSnapshot{}, err
	}
	if s.err != nil {
		return domain.CatalogSnapshot{}, s.err
	}
	return s.snapshot, nil
}

// QueryCount returns the number of fallback queries.
func (s *Store) QueryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryCount
}

// SnapshotCount returns the number of catalog snapshots taken.
func (s *Store) SnapshotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotCount
}

// Ensure Store implements the store ports at compile time.
var (
	_ domain.ItineraryStore = (*Store)(nil)
	_ domain.CatalogReader  = (*Store)(nil)
)
