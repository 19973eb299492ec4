// Package usecase contains the business logic for itinerary search.
// It orchestrates the search index, the structured store fallback and the
// catalog-based generator behind a single Search call.
package usecase

import (
	"github.com/panjf2000/ants/v2"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// Option configures optional collaborators of the search use case.
type Option func(*itinerarySearchUseCase)

// WithRecorder records every completed search. Recording runs in the
// background and never delays or fails the search.
func WithRecorder(recorder domain.SearchRecorder) Option {
	return func(uc *itinerarySearchUseCase) {
		uc.recorder = recorder
	}
}

// WithPool runs background work (speculative store queries and search
// recording) on a shared goroutine pool instead of bare goroutines.
func WithPool(pool *ants.Pool) Option {
	return func(uc *itinerarySearchUseCase) {
		uc.pool = pool
	}
}

// WithClock overrides the clock used for timing and record timestamps.
func WithClock(clock timeutil.Clock) Option {
	return func(uc *itinerarySearchUseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(log *logger.Logger) Option {
	return func(uc *itinerarySearchUseCase) {
		if log != nil {
			uc.log = log
		}
	}
}
