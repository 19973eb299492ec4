// Package mock provides test doubles for the itinerary search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, failure sequences).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Index is a configurable mock implementation of domain.IndexSearcher.
// Failures can be queued so the first calls fail and later ones succeed,
// or made sticky so every call fails.
type Index struct {
	candidates []domain.Candidate
	failures   []error
	err        error
	delay      time.Duration
	callCount  int
	mu         sync.Mutex
}

// NewIndex creates a mock index returning no candidates.
func NewIndex() *Index {
	return &Index{}
}

// WithCandidates configures the candidates returned on success.
func (i *Index) WithCandidates(candidates []domain.Candidate) *Index {
	i.candidates = candidates
	return i
}

// WithFailures queues errors returned by the first calls, one per call.
func (i *Index) WithFailures(errs ...error) *Index {
	i.failures = append(i.failures, errs...)
	return i
}

// WithError makes every call fail with err once queued failures run out.
func (i *Index) WithError(err error) *Index {
	i.err = err
	return i
}

// Unavailable configures every call to fail as unavailable.
func (i *Index) Unavailable() *Index {
	return i.WithError(domain.NewIndexError(domain.IndexUnavailable, nil))
}

// WithDelay configures the index to wait before responding.
func (i *Index) WithDelay(d time.Duration) *Index {
	i.delay = d
	return i
}

// Search implements domain.IndexSearcher.Search.
func (i *Index) Search(ctx context.Context, _ domain.SearchCriteria) ([]domain.Candidate, error) {
	i.mu.Lock()
	i.callCount++
	err := i.err
	if len(i.failures) > 0 {
		err, i.failures = i.failures[0], i.failures[1:]
	}
	i.mu.Unlock()

	if err := wait(ctx, i.delay); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return withOrigin(i.candidates, domain.OriginIndexed), nil
}

// CallCount returns the number of times Search was called.
func (i *Index) CallCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.callCount
}

// Ensure Index implements domain.IndexSearcher at compile time.
var _ domain.IndexSearcher = (*Index)(nil)

// wait sleeps for d unless ctx finishes first.
func wait(ctx context.Context, d time.Duration) error {
	if d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return ctx.Err()
}

// withOrigin returns copies of candidates stamped with origin.
func withOrigin(candidates []domain.Candidate, origin domain.Origin) []domain.Candidate {
	out := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		c.Origin = origin
		out[i] = c
	}
	return out
}
