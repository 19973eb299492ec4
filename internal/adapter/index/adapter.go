// Package index implements the full-text itinerary search index on Bleve.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// DefaultPageSize is the number of hits read per search.
const DefaultPageSize = 20

// Config configures the Bleve index.
type Config struct {
	// Path is the index directory; ignored when InMemory is set
	Path string

	// InMemory keeps the index in memory only
	InMemory bool

	// PageSize bounds the hits returned per search
	PageSize int
}

// Adapter implements domain.IndexSearcher over a Bleve index.
type Adapter struct {
	mu       sync.RWMutex
	index    bleve.Index
	pageSize int
	log      *logger.Logger
}

var _ domain.IndexSearcher = (*Adapter)(nil)

// Open creates or opens the Bleve index described by cfg.
func Open(cfg Config, log *logger.Logger) (*Adapter, error) {
	if log == nil {
		log = logger.Nop()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	idx, err := openIndex(cfg)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		index:    idx,
		pageSize: pageSize,
		log:      log.WithComponent("index"),
	}, nil
}

func openIndex(cfg Config) (bleve.Index, error) {
	if cfg.InMemory {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory bleve index: %w", err)
		}
		return idx, nil
	}

	idx, err := bleve.Open(cfg.Path)
	if err == nil {
		return idx, nil
	}

	// If the path exists but bleve.Open failed, the index is corrupt or incompatible.
	if _, statErr := os.Stat(cfg.Path); statErr == nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}

	idx, err = bleve.New(cfg.Path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return idx, nil
}

// Search implements domain.IndexSearcher.
// Zero matches return an empty slice and a nil error.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Candidate, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.index == nil {
		return nil, domain.NewIndexError(domain.IndexUnavailable, bleve.ErrorIndexClosed)
	}

	req := bleve.NewSearchRequest(buildQuery(criteria))
	req.Size = a.pageSize
	req.Fields = []string{fieldPayload}

	if err := req.Validate(); err != nil {
		return nil, domain.NewIndexError(domain.IndexMalformed, err)
	}

	result, err := a.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, classifyError(ctx, err)
	}

	raw := make([]float64, 0, len(result.Hits))
	itineraries := make([]domain.Itinerary, 0, len(result.Hits))
	for _, hit := range result.Hits {
		it, err := docToItinerary(hit.ID, hit.Fields)
		if err != nil {
			a.log.Warn().Err(err).Str("itinerary_id", hit.ID).Msg("skipping unreadable hit")
			continue
		}
		itineraries = append(itineraries, it)
		raw = append(raw, hit.Score)
	}

	scores := domain.NormalizeScores(raw)
	candidates := make([]domain.Candidate, len(itineraries))
	for i, it := range itineraries {
		candidates[i] = it.ToCandidate(domain.OriginIndexed, scores[i])
	}

	a.log.Debug().
		Uint64("total_hits", result.Total).
		Int("returned", len(candidates)).
		Msg("index search complete")

	return candidates, nil
}

// classifyError maps a Bleve failure to the index error taxonomy.
// Context errors pass through so the caller can tell timeouts apart.
func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.NewIndexError(domain.IndexUnavailable, err)
}

// IndexItineraries adds or replaces itineraries in a single batch.
func (a *Adapter) IndexItineraries(ctx context.Context, itineraries []domain.Itinerary) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.index == nil {
		return bleve.ErrorIndexClosed
	}

	batch := a.index.NewBatch()
	for _, it := range itineraries {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := itineraryToDoc(it)
		if err != nil {
			return err
		}
		if err := batch.Index(it.ID, doc); err != nil {
			return fmt.Errorf("batch index %s: %w", it.ID, err)
		}
	}

	if err := a.index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}
	return nil
}

// Remove deletes an itinerary from the index.
func (a *Adapter) Remove(_ context.Context, id string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.index == nil {
		return bleve.ErrorIndexClosed
	}
	if err := a.index.Delete(id); err != nil {
		return fmt.Errorf("remove itinerary %s: %w", id, err)
	}
	return nil
}

// DocCount returns the number of indexed itineraries.
func (a *Adapter) DocCount() (uint64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.index == nil {
		return 0, bleve.ErrorIndexClosed
	}
	return a.index.DocCount()
}

// Close closes the index. Later searches fail as unavailable.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.index == nil {
		return nil
	}
	err := a.index.Close()
	a.index = nil
	return err
}
