// Package app assembles the search service from configuration: the catalog
// store, the search index, the search log, the worker pool and the search use
// case. Both the HTTP server and the catalog CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tripfinder/itinerary-search-service/internal/adapter/index"
	"github.com/tripfinder/itinerary-search-service/internal/adapter/searchlog"
	"github.com/tripfinder/itinerary-search-service/internal/adapter/store"
	"github.com/tripfinder/itinerary-search-service/internal/config"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
	"github.com/tripfinder/itinerary-search-service/internal/usecase"
)

// drainTimeout bounds how long Close waits for queued background tasks.
const drainTimeout = 3 * time.Second

// App holds the long-lived collaborators of the service.
type App struct {
	Store     *store.Store
	Index     *index.Adapter
	SearchLog *searchlog.Log
	Pool      *ants.Pool
	Search    usecase.ItinerarySearchUseCase

	log *logger.Logger
}

// New opens every dependency described by cfg. On failure everything opened
// so far is closed again.
func New(cfg *config.Config, log *logger.Logger) (_ *App, err error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{log: log.WithComponent("app")}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Store, err = store.Open(store.Config{DSN: cfg.Store.DSN}, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a.Index, err = index.Open(index.Config{
		Path:     cfg.Index.Path,
		InMemory: cfg.Index.InMemory,
		PageSize: cfg.Search.IndexPageSize,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	if cfg.SearchLog.Enabled {
		a.SearchLog, err = searchlog.Open(searchlog.Config{
			Path:     cfg.SearchLog.Path,
			InMemory: cfg.SearchLog.InMemory,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("opening search log: %w", err)
		}
	}

	poolLog := log.WithComponent("pool")
	a.Pool, err = ants.NewPool(cfg.Workers.PoolSize,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			poolLog.Error().Interface("panic", p).Msg("background task panicked")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	opts := []usecase.Option{
		usecase.WithPool(a.Pool),
		usecase.WithLogger(log.WithComponent("search")),
	}
	if a.SearchLog != nil {
		opts = append(opts, usecase.WithRecorder(a.SearchLog))
	}

	a.Search = usecase.NewItinerarySearchUseCase(
		a.Index,
		a.Store,
		usecase.NewGenerator(a.Store),
		&usecase.Config{
			Timeout:             cfg.Search.Timeout,
			MinResults:          cfg.Search.MinResults,
			MinIndexResults:     cfg.Search.MinIndexResults,
			IndexAttempts:       cfg.Search.IndexAttempts,
			SpeculativeFallback: cfg.Search.SpeculativeFallback,
		},
		opts...,
	)

	return a, nil
}

// SeedFromFile loads a YAML seed, writes it to the store and indexes its
// itineraries.
func (a *App) SeedFromFile(ctx context.Context, path string) (*store.Seed, error) {
	seed, err := store.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	if err := a.Store.Apply(ctx, seed); err != nil {
		return nil, err
	}
	if err := a.Index.IndexItineraries(ctx, seed.Itineraries); err != nil {
		return nil, fmt.Errorf("indexing seed itineraries: %w", err)
	}
	return seed, nil
}

// Reindex copies every stored itinerary into the search index and returns
// how many were written.
func (a *App) Reindex(ctx context.Context) (int, error) {
	itineraries, err := a.Store.ListItineraries(ctx)
	if err != nil {
		return 0, err
	}
	if err := a.Index.IndexItineraries(ctx, itineraries); err != nil {
		return 0, fmt.Errorf("reindexing: %w", err)
	}
	a.log.Info().Int("itineraries", len(itineraries)).Msg("index rebuilt from store")
	return len(itineraries), nil
}

// HealthChecks returns the dependency probes reported by /health.
func (a *App) HealthChecks() map[string]func(ctx context.Context) error {
	return map[string]func(ctx context.Context) error{
		"store": func(ctx context.Context) error {
			return a.Store.Ping()
		},
		"index": func(ctx context.Context) error {
			_, err := a.Index.DocCount()
			return err
		},
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	if a.Pool != nil && !a.Pool.IsClosed() {
		// Pending search log writes finish before the log closes.
		if err := a.Pool.ReleaseTimeout(drainTimeout); err != nil {
			a.log.Warn().Err(err).Msg("background tasks still running at shutdown")
		}
	}
	if a.SearchLog != nil {
		if err := a.SearchLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing search log: %w", err))
		}
	}
	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing index: %w", err))
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	return errors.Join(errs...)
}
