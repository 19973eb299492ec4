package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all itinerary search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *ItineraryHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware on the
// versioned API group. The health check never gets the extra middleware.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *ItineraryHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	itineraries := api.Group("/itineraries")
	itineraries.POST("/search", h.SearchItineraries)
	itineraries.POST("/search-or-generate", h.SearchOrGenerate)
}
