package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Recorder collects search records in memory.
type Recorder struct {
	records []domain.SearchRecord
	err     error
	mu      sync.Mutex
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WithError makes every Record call fail.
func (r *Recorder) WithError(err error) *Recorder {
	r.err = err
	return r
}

// Record implements domain.SearchRecorder.Record.
func (r *Recorder) Record(_ context.Context, record domain.SearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

// Records returns a copy of the records collected so far.
func (r *Recorder) Records() []domain.SearchRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SearchRecord(nil), r.records...)
}

// WaitFor polls until at least n records arrived or timeout passes.
// Recording is asynchronous, so tests wait before asserting.
func (r *Recorder) WaitFor(n int, timeout time.Duration) []domain.SearchRecord {
	deadline := time.Now().Add(timeout)
	for {
		records := r.Records()
		if len(records) >= n || time.Now().After(deadline) {
			return records
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Ensure Recorder implements domain.SearchRecorder at compile time.
var _ domain.SearchRecorder = (*Recorder)(nil)
