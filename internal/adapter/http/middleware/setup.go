package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log entry carries the id
//  2. RequestLogger, which logs after the handler and recovery finish
//  3. Recover, which wraps the handlers
//
// Call it before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig) {
	e.Use(Chain(log, recoveryConfig)...)
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	httpLog := log.WithComponent("http")
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(httpLog),
		RecoverWithConfig(httpLog, recoveryConfig),
	}
}
