package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfinder/itinerary-search-service/internal/adapter/http/response"
	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/usecase"
)

// mockUseCase is a mock implementation of ItinerarySearchUseCase for testing.
type mockUseCase struct {
	searchFunc func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	calls      int
	lastReq    domain.SearchRequest
}

func (m *mockUseCase) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.lastReq = req
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}

	criteria, err := domain.NormalizeCriteria(req)
	if err != nil {
		return nil, err
	}
	resp := domain.NewSearchResponse("search-1", criteria, nil, domain.SearchMetadata{
		IndexStatus:   domain.IndexStatusEmpty,
		IndexAttempts: 1,
		SearchTimeMs:  4,
	})
	return &resp, nil
}

// setupTestHandler creates a test Echo instance and ItineraryHandler.
func setupTestHandler(uc usecase.ItinerarySearchUseCase) (*echo.Echo, *ItineraryHandler) {
	e := echo.New()
	h := NewItineraryHandler(uc)
	RegisterRoutes(e, h)
	return e, h
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func intPtr(i int) *int {
	return &i
}

func TestSearchItineraries_Success(t *testing.T) {
	mock := &mockUseCase{
		searchFunc: func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
			criteria, err := domain.NormalizeCriteria(req)
			require.NoError(t, err)

			itineraries := []domain.Candidate{
				{
					ID: "it-fairbanks-trails", Name: "Fairbanks Trails", Locations: []string{"fairbanks"},
					Activities: []string{"hiking"}, Lodging: []string{"cabin"}, Price: 640, DurationDays: 3,
					MediaRefs: []string{"media/trail.jpg"}, Origin: domain.OriginIndexed, Score: 1,
				},
				{
					ID: "gen-1", Name: "Fairbanks Hiking Adventure", Locations: []string{"fairbanks"},
					Activities: []string{"hiking"}, Lodging: []string{"cabin"}, Price: 225, DurationDays: 1,
					Tags: []string{domain.GeneratedTag}, Origin: domain.OriginGenerated, Score: domain.GeneratedScore,
				},
			}
			resp := domain.NewSearchResponse("search-42", criteria, itineraries, domain.SearchMetadata{
				IndexStatus:   domain.IndexStatusOK,
				IndexAttempts: 1,
				FallbackUsed:  true,
				SearchTimeMs:  17,
			})
			return &resp, nil
		},
	}

	e, _ := setupTestHandler(mock)

	req := SearchItinerariesRequest{
		Locations:         []string{"Fairbanks"},
		ArrivalDatetime:   "2026-07-01",
		DepartureDatetime: "2026-07-04",
		Adults:            intPtr(2),
		Activities:        []string{"Hiking"},
		TripPace:          "Relaxed",
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "search-42", got.SearchID)
	assert.Equal(t, []string{"fairbanks"}, got.SearchCriteria.Locations)
	assert.Equal(t, "2026-07-01", got.SearchCriteria.ArrivalDatetime)
	assert.Equal(t, "2026-07-04", got.SearchCriteria.DepartureDatetime)
	assert.Equal(t, 2, got.SearchCriteria.Adults)
	assert.Equal(t, "relaxed", got.SearchCriteria.TripPace)

	assert.Equal(t, 2, got.Metadata.TotalResults)
	assert.Equal(t, 1, got.Metadata.IndexedCount)
	assert.Equal(t, 1, got.Metadata.GeneratedCount)
	assert.Equal(t, "ok", got.Metadata.IndexStatus)
	assert.True(t, got.Metadata.FallbackUsed)

	require.Len(t, got.Itineraries, 2)
	assert.Equal(t, "it-fairbanks-trails", got.Itineraries[0].ID)
	assert.Equal(t, 640.0, got.Itineraries[0].PersonCost)
	assert.Equal(t, []string{"media/trail.jpg"}, got.Itineraries[0].Images)
	assert.Equal(t, "indexed", got.Itineraries[0].Origin)
	assert.Equal(t, "generated", got.Itineraries[1].Origin)
	assert.Equal(t, []string{"generated"}, got.Itineraries[1].Tags)
	assert.Equal(t, []string{}, got.Itineraries[1].Images)

	assert.Equal(t, []string{"Fairbanks"}, mock.lastReq.Locations)
	assert.Equal(t, "2026-07-01", mock.lastReq.Arrival)
	assert.Equal(t, "Relaxed", mock.lastReq.Pace)
}

func TestSearchOrGenerate_IsAlias(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search-or-generate", SearchItinerariesRequest{
		Activities: []string{"Hiking"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, []string{"Hiking"}, mock.lastReq.Activities)
}

func TestSearchItineraries_EmptyBody(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search", map[string]interface{}{})

	require.Equal(t, http.StatusOK, rec.Code)

	var got SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.SearchCriteria.Adults)
	assert.Equal(t, []string{}, got.SearchCriteria.Locations)
	assert.Equal(t, []ItineraryDTO{}, got.Itineraries)
}

func TestSearchItineraries_InvalidJSON(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/search", strings.NewReader("{invalid json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
	assert.Zero(t, mock.calls)
}

func TestSearchItineraries_ShapeValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       SearchItinerariesRequest
		wantField string
	}{
		{
			name:      "blank location",
			req:       SearchItinerariesRequest{Locations: []string{"Fairbanks", "  "}},
			wantField: "locations[1]",
		},
		{
			name:      "unparseable arrival",
			req:       SearchItinerariesRequest{ArrivalDatetime: "July 1st"},
			wantField: "arrival_datetime",
		},
		{
			name:      "party too large",
			req:       SearchItinerariesRequest{Adults: intPtr(40), Children: intPtr(20)},
			wantField: "party",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUseCase{}
			e, _ := setupTestHandler(mock)

			rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search", tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, response.CodeValidationError, detail.Code)
			assert.Contains(t, detail.Details, tt.wantField)
			assert.Zero(t, mock.calls, "use case must not be called for invalid requests")
		})
	}
}

func TestSearchItineraries_DomainValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       SearchItinerariesRequest
		wantField string
	}{
		{
			name:      "arrival equals departure",
			req:       SearchItinerariesRequest{ArrivalDatetime: "2026-07-01", DepartureDatetime: "2026-07-01"},
			wantField: "departure",
		},
		{
			name:      "zero adults",
			req:       SearchItinerariesRequest{Adults: intPtr(0)},
			wantField: "adults",
		},
		{
			name:      "unknown pace",
			req:       SearchItinerariesRequest{TripPace: "frantic"},
			wantField: "pace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := setupTestHandler(&mockUseCase{})

			rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search", tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, response.CodeValidationError, detail.Code)
			assert.Contains(t, detail.Details, tt.wantField)
		})
	}
}

func TestSearchItineraries_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "search unavailable",
			err:         &domain.SearchUnavailableError{IndexErr: domain.NewIndexError(domain.IndexUnavailable, errors.New("down")), StoreErr: domain.WrapStoreError("query", errors.New("locked"))},
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    response.CodeServiceUnavailable,
			wantMessage: response.MsgServiceUnavailable,
		},
		{
			name:        "search timeout",
			err:         fmt.Errorf("%w after %s", domain.ErrSearchTimeout, 5*time.Second),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    response.CodeTimeout,
			wantMessage: response.MsgTimeout,
		},
		{
			name:        "raw deadline",
			err:         context.DeadlineExceeded,
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    response.CodeTimeout,
			wantMessage: response.MsgTimeout,
		},
		{
			name:        "cancelled",
			err:         context.Canceled,
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    response.CodeTimeout,
			wantMessage: response.MsgRequestCancelled,
		},
		{
			name:        "unexpected",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    response.CodeInternalError,
			wantMessage: response.MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUseCase{
				searchFunc: func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
					return nil, tt.err
				},
			}
			e, _ := setupTestHandler(mock)

			rec := makeRequest(e, http.MethodPost, "/api/v1/itineraries/search", SearchItinerariesRequest{})

			assert.Equal(t, tt.wantStatus, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantMessage, detail.Message)
		})
	}
}

func TestHealth_Success(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
}

func TestHealth_WithChecks(t *testing.T) {
	e := echo.New()
	h := NewItineraryHandler(&mockUseCase{}).
		WithHealthCheck("store", func(ctx context.Context) error { return nil }).
		WithHealthCheck("index", func(ctx context.Context) error { return errors.New("index closed") })
	RegisterRoutes(e, h)

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var got response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, response.StatusDegraded, got.Status)
	assert.Equal(t, "ok", got.Checks["store"])
	assert.Equal(t, "index closed", got.Checks["index"])
}

func TestToDomainRequest(t *testing.T) {
	req := &SearchItinerariesRequest{
		Locations:         []string{"Denali"},
		ArrivalDatetime:   "2026-06-01",
		DepartureDatetime: "2026-06-04",
		Adults:            intPtr(2),
		Children:          intPtr(1),
		Activities:        []string{"Rafting"},
		Lodging:           []string{"Lodge"},
		Transportation:    "Train",
		TripPace:          "adventure",
	}

	got := ToDomainRequest(req)

	assert.Equal(t, []string{"Denali"}, got.Locations)
	assert.Equal(t, "2026-06-01", got.Arrival)
	assert.Equal(t, "2026-06-04", got.Departure)
	assert.Equal(t, 2, *got.Adults)
	assert.Equal(t, 1, *got.Children)
	assert.Nil(t, got.Infants)
	assert.Equal(t, []string{"Rafting"}, got.Activities)
	assert.Equal(t, []string{"Lodge"}, got.Lodging)
	assert.Equal(t, "Train", got.Transportation)
	assert.Equal(t, "adventure", got.Pace)
}

func TestToSearchResponseDTO_Nil(t *testing.T) {
	assert.Nil(t, ToSearchResponseDTO(nil))
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, NewItineraryHandler(&mockUseCase{}))

	routes := e.Routes()
	registered := make(map[string]bool, len(routes))
	for _, r := range routes {
		registered[r.Method+" "+r.Path] = true
	}

	assert.True(t, registered["GET /health"])
	assert.True(t, registered["POST /api/v1/itineraries/search"])
	assert.True(t, registered["POST /api/v1/itineraries/search-or-generate"])
}
