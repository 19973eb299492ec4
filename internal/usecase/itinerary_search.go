package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/retry"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// Default thresholds and budgets.
const (
	DefaultTimeout         = 5 * time.Second
	DefaultMinResults      = 3
	DefaultMinIndexResults = 3
	DefaultIndexAttempts   = 2
	DefaultRecordTimeout   = 2 * time.Second
)

// ItinerarySearchUseCase defines the interface for itinerary search operations.
type ItinerarySearchUseCase interface {
	// Search validates the request, queries the index, falls back to the store
	// when the index under-performs and tops the result up with generated
	// itineraries. It returns *domain.ValidationError, domain.ErrSearchTimeout,
	// *domain.SearchUnavailableError or the context error on failure.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// Config contains the thresholds of the search policy.
type Config struct {
	// Timeout bounds querying through generating for one request
	Timeout time.Duration

	// MinResults is the minimum list length before generation kicks in
	MinResults int

	// MinIndexResults is the index result count below which the store is queried
	MinIndexResults int

	// IndexAttempts counts index calls including the retry on unavailable
	IndexAttempts int

	// SpeculativeFallback starts the store query alongside the index query.
	// Its result is still only used when the index under-performs.
	SpeculativeFallback bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		MinResults:      DefaultMinResults,
		MinIndexResults: DefaultMinIndexResults,
		IndexAttempts:   DefaultIndexAttempts,
	}
}

type itinerarySearchUseCase struct {
	index     domain.IndexSearcher
	store     domain.ItineraryStore
	generator CandidateGenerator
	cfg       Config

	recorder domain.SearchRecorder
	pool     *ants.Pool
	clock    timeutil.Clock
	log      *logger.Logger
}

// NewItinerarySearchUseCase creates a new ItinerarySearchUseCase.
// If config is nil, or a field is not positive, defaults are used.
func NewItinerarySearchUseCase(
	index domain.IndexSearcher,
	store domain.ItineraryStore,
	generator CandidateGenerator,
	config *Config,
	opts ...Option,
) ItinerarySearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.Timeout > 0 {
			cfg.Timeout = config.Timeout
		}
		if config.MinResults > 0 {
			cfg.MinResults = config.MinResults
		}
		if config.MinIndexResults > 0 {
			cfg.MinIndexResults = config.MinIndexResults
		}
		if config.IndexAttempts > 0 {
			cfg.IndexAttempts = config.IndexAttempts
		}
		cfg.SpeculativeFallback = config.SpeculativeFallback
	}

	uc := &itinerarySearchUseCase{
		index:     index,
		store:     store,
		generator: generator,
		cfg:       cfg,
		clock:     timeutil.NewRealClock(),
		log:       logger.L().WithComponent("search"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// storeResult holds the outcome of one store query.
type storeResult struct {
	candidates []domain.Candidate
	err        error
}

// Search implements ItinerarySearchUseCase.Search.
func (uc *itinerarySearchUseCase) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	start := uc.clock.Now()

	criteria, err := domain.NormalizeCriteria(req)
	if err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	log := uc.log.FromContext(ctx).WithSearchID(searchID)

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var speculative <-chan storeResult
	if uc.cfg.SpeculativeFallback {
		speculative = uc.startStoreQuery(ctx, criteria, log)
	}

	indexed, attempts, indexErr := uc.queryIndex(ctx, criteria, log)
	if err := uc.contextError(ctx); err != nil {
		return nil, err
	}

	metadata := domain.SearchMetadata{
		IndexStatus:   indexStatus(indexed, indexErr),
		IndexAttempts: attempts,
	}
	if indexErr != nil {
		log.Warn().Err(indexErr).Int("attempts", attempts).Msg("index query failed")
	} else {
		log.Debug().Int("results", len(indexed)).Msg("index query complete")
	}

	var stored []domain.Candidate
	if indexErr != nil || len(indexed) < uc.cfg.MinIndexResults {
		log.Debug().
			Int("indexed", len(indexed)).
			Int("min_index_results", uc.cfg.MinIndexResults).
			Msg("falling back to store")
		metadata.FallbackUsed = true

		var storeErr error
		stored, storeErr = uc.awaitStore(ctx, criteria, speculative)
		if err := uc.contextError(ctx); err != nil {
			return nil, err
		}
		if storeErr != nil {
			if len(indexed) == 0 {
				log.Error().Err(storeErr).AnErr("index_error", indexErr).Msg("index and store both failed")
				return nil, &domain.SearchUnavailableError{IndexErr: indexErr, StoreErr: storeErr}
			}
			log.Warn().Err(storeErr).Msg("store fallback failed, keeping indexed results")
		}
	}

	ranked := MergeCandidates(indexed, stored)

	if len(ranked) < uc.cfg.MinResults {
		needed := uc.cfg.MinResults - len(ranked)
		log.Debug().Int("have", len(ranked)).Int("needed", needed).Msg("generating itineraries")

		generated, genErr := uc.generator.Generate(ctx, criteria, needed)
		if err := uc.contextError(ctx); err != nil {
			return nil, err
		}
		before := len(ranked)
		ranked = AppendGenerated(ranked, generated)

		switch {
		case genErr != nil && !errors.Is(genErr, domain.ErrGenerationExhausted):
			log.Warn().Err(genErr).Msg("catalog unavailable for generation")
			metadata.CatalogUnavailable = true
		case genErr != nil:
			log.Info().Err(genErr).Msg("generation produced no itineraries")
			metadata.GenerationExhausted = true
		case len(ranked)-before < needed:
			metadata.GenerationExhausted = true
		}
	}

	metadata.SearchTimeMs = timeutil.Since(uc.clock, start).Milliseconds()
	resp := domain.NewSearchResponse(searchID, criteria, ranked, metadata)

	log.Info().
		Int("total", resp.Metadata.TotalResults).
		Int("indexed", resp.Metadata.IndexedCount).
		Int("stored", resp.Metadata.StoredCount).
		Int("generated", resp.Metadata.GeneratedCount).
		Int64("duration_ms", resp.Metadata.SearchTimeMs).
		Msg("search complete")

	uc.record(&resp, log)
	return &resp, nil
}

// queryIndex calls the index, retrying retryable failures up to IndexAttempts.
func (uc *itinerarySearchUseCase) queryIndex(ctx context.Context, criteria domain.SearchCriteria, log *logger.Logger) ([]domain.Candidate, int, error) {
	attempts := 0
	cfg := retry.IndexConfig.
		WithMaxAttempts(uc.cfg.IndexAttempts).
		WithRetryIf(domain.IsRetryableIndexError).
		WithOnRetry(func(attempt int, err error) {
			log.Debug().Err(err).Int("attempt", attempt).Msg("retrying index query")
		})

	candidates, err := retry.DoWithResult(ctx, func() ([]domain.Candidate, error) {
		attempts++
		return uc.index.Search(ctx, criteria)
	}, cfg)
	return candidates, attempts, err
}

// startStoreQuery runs the store query in the background and returns a
// channel that receives exactly one result.
func (uc *itinerarySearchUseCase) startStoreQuery(ctx context.Context, criteria domain.SearchCriteria, log *logger.Logger) <-chan storeResult {
	results := make(chan storeResult, 1)

	task := func() {
		defer func() {
			if r := recover(); r != nil {
				results <- storeResult{err: fmt.Errorf("store panic: %v", r)}
			}
		}()
		candidates, err := uc.store.Query(ctx, criteria)
		results <- storeResult{candidates: candidates, err: err}
	}

	uc.submit(task, log)
	return results
}

// awaitStore returns the speculative store result when one is running,
// otherwise it queries the store inline.
func (uc *itinerarySearchUseCase) awaitStore(ctx context.Context, criteria domain.SearchCriteria, speculative <-chan storeResult) ([]domain.Candidate, error) {
	if speculative == nil {
		return uc.store.Query(ctx, criteria)
	}

	select {
	case r := <-speculative:
		return r.candidates, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// record hands the search summary to the recorder without blocking the caller.
func (uc *itinerarySearchUseCase) record(resp *domain.SearchResponse, log *logger.Logger) {
	if uc.recorder == nil {
		return
	}

	rec := domain.NewSearchRecord(resp, uc.clock.Now())
	uc.submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultRecordTimeout)
		defer cancel()

		if err := uc.recorder.Record(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("failed to record search")
		}
	}, log)
}

// submit runs task on the pool, or on a new goroutine when there is no pool
// or the pool is saturated.
func (uc *itinerarySearchUseCase) submit(task func(), log *logger.Logger) {
	if uc.pool != nil {
		err := uc.pool.Submit(task)
		if err == nil {
			return
		}
		log.Debug().Err(err).Msg("worker pool rejected task, using goroutine")
	}
	go task()
}

// contextError maps a finished request context to the search error taxonomy.
func (uc *itinerarySearchUseCase) contextError(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", domain.ErrSearchTimeout, uc.cfg.Timeout)
	default:
		return err
	}
}

func indexStatus(indexed []domain.Candidate, err error) domain.IndexStatus {
	var indexErr *domain.IndexError
	switch {
	case err == nil && len(indexed) == 0:
		return domain.IndexStatusEmpty
	case err == nil:
		return domain.IndexStatusOK
	case errors.As(err, &indexErr) && indexErr.Kind == domain.IndexMalformed:
		return domain.IndexStatusMalformed
	default:
		return domain.IndexStatusUnavailable
	}
}

// Ensure itinerarySearchUseCase implements ItinerarySearchUseCase at compile time.
var _ ItinerarySearchUseCase = (*itinerarySearchUseCase)(nil)
