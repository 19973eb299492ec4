// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/tripfinder/itinerary-search-service/internal/app"
	"github.com/tripfinder/itinerary-search-service/internal/config"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// ProjectPath returns the absolute path of a file relative to the project root.
func ProjectPath(t *testing.T, parts ...string) string {
	t.Helper()

	// Get the path to the project root relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}

// SeedFile returns the path of the sample catalog used across tests.
func SeedFile(t *testing.T) string {
	t.Helper()
	return ProjectPath(t, "testdata", "catalog.yaml")
}

// MemoryConfig returns a valid configuration that keeps the store, the index
// and the search log in memory.
func MemoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Search: config.SearchConfig{
			Timeout:         5 * time.Second,
			MinResults:      3,
			MinIndexResults: 3,
			IndexAttempts:   2,
			IndexPageSize:   20,
		},
		Index:     config.IndexConfig{InMemory: true},
		Store:     config.StoreConfig{DSN: ":memory:"},
		SearchLog: config.SearchLogConfig{Enabled: true, InMemory: true},
		Workers:   config.WorkerConfig{PoolSize: 8},
		Logging:   logger.Config{Level: "error", Format: "json"},
		App:       config.AppConfig{Env: "development"},
	}
}

// NewApp opens an application over cfg and closes it when the test ends.
func NewApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()

	a, err := app.New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Failed to open application: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// NewSeededApp opens an in-memory application loaded with the sample catalog.
func NewSeededApp(t *testing.T) *app.App {
	t.Helper()

	a := NewApp(t, MemoryConfig())
	if _, err := a.SeedFromFile(context.Background(), SeedFile(t)); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
	return a
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// IntPtr returns a pointer to an int.
// Convenience function for party counts.
func IntPtr(i int) *int {
	return &i
}
