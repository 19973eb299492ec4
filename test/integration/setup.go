// Package integration provides helpers and integration tests for the itinerary
// search system. Integration tests verify that components work together
// correctly, including HTTP handlers, the search use case, the Bleve index,
// the SQLite store and the Badger search log.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/tripfinder/itinerary-search-service/internal/adapter/http"
	"github.com/tripfinder/itinerary-search-service/internal/adapter/http/middleware"
	"github.com/tripfinder/itinerary-search-service/internal/app"
	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
	"github.com/tripfinder/itinerary-search-service/internal/usecase"
	"github.com/tripfinder/itinerary-search-service/test/mock"
	"github.com/tripfinder/itinerary-search-service/test/testutil"
)

const (
	searchPath           = "/api/v1/itineraries/search"
	searchOrGeneratePath = "/api/v1/itineraries/search-or-generate"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.ItineraryHandler
}

// NewTestServer creates a new test server with the given use case and the
// production middleware chain.
func NewTestServer(uc usecase.ItinerarySearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, logger.Nop())

	handler := httpAdapter.NewItineraryHandler(uc)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// NewAppServer creates a test server over a fully wired application,
// including its health checks.
func NewAppServer(a *app.App) *TestServer {
	ts := NewTestServer(a.Search)
	for name, check := range a.HealthChecks() {
		ts.Handler.WithHealthCheck(name, check)
	}
	return ts
}

// NewSeededServer creates a test server over an in-memory application
// loaded with the sample catalog.
func NewSeededServer(t *testing.T) (*TestServer, *app.App) {
	t.Helper()
	a := testutil.NewSeededApp(t)
	return NewAppServer(a), a
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	RawBody     string
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch {
	case req.RawBody != "":
		bodyReader = bytes.NewReader([]byte(req.RawBody))
	case req.Body != nil:
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	default:
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil || req.RawBody != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts body to the search endpoint.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   searchPath,
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponseDTO.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponseDTO, error) {
	var resp httpAdapter.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// CreateUseCase creates a use case over the mocks with default thresholds.
// The store doubles as the generator's catalog.
func CreateUseCase(index *mock.Index, store *mock.Store, opts ...usecase.Option) usecase.ItinerarySearchUseCase {
	return CreateUseCaseWithConfig(index, store, nil, opts...)
}

// CreateUseCaseWithConfig creates a use case over the mocks with custom thresholds.
func CreateUseCaseWithConfig(index *mock.Index, store *mock.Store, config *usecase.Config, opts ...usecase.Option) usecase.ItinerarySearchUseCase {
	opts = append([]usecase.Option{usecase.WithLogger(logger.Nop())}, opts...)
	return usecase.NewItinerarySearchUseCase(index, store, usecase.NewGenerator(store), config, opts...)
}

// DenaliHikingRequest returns a request that the sample snapshot can serve.
func DenaliHikingRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Locations:  []string{"Denali"},
		Activities: []string{"Hiking"},
	}
}

// CandidateIDs returns the ids of candidates in order.
func CandidateIDs(candidates []domain.Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	return ids
}
