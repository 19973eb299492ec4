// Package response provides standardized HTTP response builders for the itinerary search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`

	// Checks maps a dependency name to "ok" or its error message
	Checks map[string]string `json:"checks,omitempty"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: StatusOK,
	})
}

// HealthWithChecks writes a health response listing dependency results.
// Any failed check turns the response into a 503 with status "degraded".
func HealthWithChecks(c echo.Context, checks map[string]error) error {
	resp := &HealthResponse{
		Status: StatusOK,
		Checks: make(map[string]string, len(checks)),
	}
	code := http.StatusOK
	for name, err := range checks {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = StatusDegraded
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = StatusOK
	}
	return c.JSON(code, resp)
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}
