// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Search    SearchConfig
	Index     IndexConfig
	Store     StoreConfig
	SearchLog SearchLogConfig
	Workers   WorkerConfig
	Catalog   CatalogConfig
	Logging   logger.Config
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// SearchConfig holds the orchestration thresholds and budget.
type SearchConfig struct {
	// Timeout is the per-request budget covering index, store and generation
	Timeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"5s"`

	// MinResults is the global minimum result count, filled by generation
	MinResults int `env:"SEARCH_MIN_RESULTS" envDefault:"3"`

	// MinIndexResults is the index productivity floor that triggers the store fallback
	MinIndexResults int `env:"SEARCH_MIN_INDEX_RESULTS" envDefault:"3"`

	// IndexAttempts bounds index calls per search, including the first
	IndexAttempts int `env:"SEARCH_INDEX_ATTEMPTS" envDefault:"2"`

	// IndexPageSize bounds the hits read from the index per search
	IndexPageSize int `env:"SEARCH_INDEX_PAGE_SIZE" envDefault:"20"`

	// SpeculativeFallback starts the store query alongside the index query
	SpeculativeFallback bool `env:"SEARCH_SPECULATIVE_FALLBACK" envDefault:"false"`
}

// IndexConfig holds Bleve index settings.
type IndexConfig struct {
	Path     string `env:"INDEX_PATH" envDefault:"data/itineraries.bleve"`
	InMemory bool   `env:"INDEX_IN_MEMORY" envDefault:"false"`
}

// StoreConfig holds SQLite settings.
type StoreConfig struct {
	DSN string `env:"STORE_DSN" envDefault:"file:data/catalog.db?_journal_mode=WAL&_foreign_keys=on"`
}

// SearchLogConfig holds the search submission log settings.
type SearchLogConfig struct {
	Enabled  bool   `env:"SEARCHLOG_ENABLED" envDefault:"true"`
	Path     string `env:"SEARCHLOG_PATH" envDefault:"data/searchlog"`
	InMemory bool   `env:"SEARCHLOG_IN_MEMORY" envDefault:"false"`
}

// WorkerConfig sizes the shared background worker pool.
type WorkerConfig struct {
	PoolSize int `env:"WORKER_POOL_SIZE" envDefault:"16"`
}

// CatalogConfig holds catalog seeding settings.
type CatalogConfig struct {
	// SeedFile is a YAML catalog loaded at startup when set
	SeedFile string `env:"CATALOG_SEED_FILE"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It loads a .env file first when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive")
	}

	if cfg.Search.MinResults < 1 {
		return fmt.Errorf("SEARCH_MIN_RESULTS must be at least 1, got %d", cfg.Search.MinResults)
	}
	if cfg.Search.MinIndexResults < 1 {
		return fmt.Errorf("SEARCH_MIN_INDEX_RESULTS must be at least 1, got %d", cfg.Search.MinIndexResults)
	}
	if cfg.Search.IndexAttempts < 1 || cfg.Search.IndexAttempts > 5 {
		return fmt.Errorf("SEARCH_INDEX_ATTEMPTS must be between 1 and 5, got %d", cfg.Search.IndexAttempts)
	}
	if cfg.Search.IndexPageSize < cfg.Search.MinIndexResults {
		return fmt.Errorf("SEARCH_INDEX_PAGE_SIZE (%d) must be at least SEARCH_MIN_INDEX_RESULTS (%d)",
			cfg.Search.IndexPageSize, cfg.Search.MinIndexResults)
	}

	if !cfg.Index.InMemory && cfg.Index.Path == "" {
		return fmt.Errorf("INDEX_PATH is required unless INDEX_IN_MEMORY is set")
	}
	if cfg.Store.DSN == "" {
		return fmt.Errorf("STORE_DSN is required")
	}
	if cfg.SearchLog.Enabled && !cfg.SearchLog.InMemory && cfg.SearchLog.Path == "" {
		return fmt.Errorf("SEARCHLOG_PATH is required when the search log is enabled")
	}
	if cfg.Workers.PoolSize < 1 {
		return fmt.Errorf("WORKER_POOL_SIZE must be at least 1, got %d", cfg.Workers.PoolSize)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
