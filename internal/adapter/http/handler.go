// Package http provides the HTTP handler layer for the itinerary search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/tripfinder/itinerary-search-service/internal/adapter/http/response"
	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/usecase"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// ItineraryHandler handles HTTP requests for itinerary endpoints.
type ItineraryHandler struct {
	useCase usecase.ItinerarySearchUseCase
	checks  map[string]HealthCheck
}

// NewItineraryHandler creates a new ItineraryHandler with the given use case.
func NewItineraryHandler(uc usecase.ItinerarySearchUseCase) *ItineraryHandler {
	return &ItineraryHandler{
		useCase: uc,
		checks:  make(map[string]HealthCheck),
	}
}

// WithHealthCheck registers a dependency check reported by Health.
func (h *ItineraryHandler) WithHealthCheck(name string, check HealthCheck) *ItineraryHandler {
	h.checks[name] = check
	return h
}

// SearchItineraries handles POST /api/v1/itineraries/search
//
// @Summary Search for itineraries
// @Description Resolve travel criteria into ranked itineraries. Falls back to the catalog store when the search index is unavailable or returns too few matches, and generates itineraries from catalog building blocks when the result is still short.
// @Tags itineraries
// @Accept json
// @Produce json
// @Param request body SearchItinerariesRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Search unavailable"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /api/v1/itineraries/search [post]
func (h *ItineraryHandler) SearchItineraries(c echo.Context) error {
	var req SearchItinerariesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToDomainRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// SearchOrGenerate handles POST /api/v1/itineraries/search-or-generate
//
// @Summary Search for itineraries, generating when short
// @Description Alias of the search endpoint kept for existing clients.
// @Tags itineraries
// @Accept json
// @Produce json
// @Param request body SearchItinerariesRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Search unavailable"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /api/v1/itineraries/search-or-generate [post]
func (h *ItineraryHandler) SearchOrGenerate(c echo.Context) error {
	return h.SearchItineraries(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *ItineraryHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return response.ValidationError(c, map[string]string{fieldErr.Field: fieldErr.Message})
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *ItineraryHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return h.handleValidationError(c, err)
	}

	if errors.Is(err, domain.ErrSearchUnavailable) {
		return response.ServiceUnavailable(c)
	}

	if errors.Is(err, domain.ErrSearchTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	return response.InternalServerError(c)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse "A dependency check failed"
// @Router /health [get]
func (h *ItineraryHandler) Health(c echo.Context) error {
	if len(h.checks) == 0 {
		return response.Health(c)
	}

	ctx := c.Request().Context()
	results := make(map[string]error, len(h.checks))
	for name, check := range h.checks {
		results[name] = check(ctx)
	}
	return response.HealthWithChecks(c, results)
}
