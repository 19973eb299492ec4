// Package main is the entry point for the itinerary search service.
//
//	@title						Itinerary Search API
//	@version					1.0.0
//	@description				Resolves travel criteria into ranked itineraries from a full-text index, falls back to the catalog store when the index under-performs and generates itineraries from catalog building blocks when results are short.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/tripfinder/itinerary-search-service/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/tripfinder/itinerary-search-service/docs"

	// Application layers
	itineraryhttp "github.com/tripfinder/itinerary-search-service/internal/adapter/http"
	"github.com/tripfinder/itinerary-search-service/internal/adapter/http/middleware"
	"github.com/tripfinder/itinerary-search-service/internal/app"
	"github.com/tripfinder/itinerary-search-service/internal/config"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	seedTimeout     = 30 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(cfg.Logging)
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	if cfg.Catalog.SeedFile != "" {
		seedCatalog(application, cfg.Catalog.SeedFile, log)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, log)

	// Setup routes
	setupRoutes(e, application)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// seedCatalog loads the configured seed file into the store and the index.
// A broken seed is logged and the service starts with what it has.
func seedCatalog(application *app.App, path string, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	seed, err := application.SeedFromFile(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to seed catalog")
		return
	}
	log.Info().
		Str("file", path).
		Int("itineraries", len(seed.Itineraries)).
		Msg("Catalog seeded")
}

// setupRoutes configures the HTTP routes.
func setupRoutes(e *echo.Echo, application *app.App) {
	handler := itineraryhttp.NewItineraryHandler(application.Search)
	for name, check := range application.HealthChecks() {
		handler.WithHealthCheck(name, check)
	}

	itineraryhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
