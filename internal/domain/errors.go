package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the itinerary search flow.
var (
	// ErrInvalidRequest indicates the search request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrIndexUnavailable indicates the search index could not be reached or read.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrIndexMalformedQuery indicates the search index rejected the query.
	ErrIndexMalformedQuery = errors.New("search index rejected query")

	// ErrStore indicates the structured store failed to answer a query.
	ErrStore = errors.New("itinerary store failure")

	// ErrGenerationExhausted indicates the catalog cannot produce any itinerary
	// satisfying the criteria.
	ErrGenerationExhausted = errors.New("no catalog combination satisfies criteria")

	// ErrSearchTimeout indicates the per-request search budget was exceeded.
	ErrSearchTimeout = errors.New("search timed out")

	// ErrSearchUnavailable indicates neither the index nor the store produced
	// a usable answer.
	ErrSearchUnavailable = errors.New("search unavailable")
)

// ValidationError describes a single rejected request field.
// It wraps ErrInvalidRequest so callers can match it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// IndexErrorKind classifies index failures.
type IndexErrorKind string

const (
	// IndexUnavailable covers connectivity, closed index and I/O failures. Retryable.
	IndexUnavailable IndexErrorKind = "unavailable"

	// IndexMalformed covers queries the index refuses to execute. Not retryable.
	IndexMalformed IndexErrorKind = "malformed"
)

// IndexError wraps a failure reported by the search index.
type IndexError struct {
	Kind IndexErrorKind
	Err  error
}

// NewIndexError creates an IndexError of the given kind.
func NewIndexError(kind IndexErrorKind, err error) *IndexError {
	return &IndexError{Kind: kind, Err: err}
}

func (e *IndexError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("index %s", e.Kind)
	}
	return fmt.Sprintf("index %s: %v", e.Kind, e.Err)
}

func (e *IndexError) Unwrap() []error {
	sentinel := ErrIndexUnavailable
	if e.Kind == IndexMalformed {
		sentinel = ErrIndexMalformedQuery
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// Retryable reports whether the failure may succeed on another attempt.
func (e *IndexError) Retryable() bool {
	return e.Kind == IndexUnavailable
}

// SearchUnavailableError records both failures that made a search impossible.
type SearchUnavailableError struct {
	IndexErr error
	StoreErr error
}

func (e *SearchUnavailableError) Error() string {
	switch {
	case e.IndexErr != nil && e.StoreErr != nil:
		return fmt.Sprintf("%v: index: %v; store: %v", ErrSearchUnavailable, e.IndexErr, e.StoreErr)
	case e.StoreErr != nil:
		return fmt.Sprintf("%v: store: %v", ErrSearchUnavailable, e.StoreErr)
	default:
		return ErrSearchUnavailable.Error()
	}
}

func (e *SearchUnavailableError) Unwrap() error {
	return ErrSearchUnavailable
}

// IsInvalidRequest reports whether err is a request validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsRetryableIndexError reports whether err is an index failure worth retrying.
func IsRetryableIndexError(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr) && indexErr.Retryable()
}

// WrapStoreError marks err as a store failure.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
