package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every variable Load reads.
var configEnvVars = []string{
	"SERVER_PORT",
	"SERVER_READ_TIMEOUT",
	"SERVER_WRITE_TIMEOUT",
	"SEARCH_TIMEOUT",
	"SEARCH_MIN_RESULTS",
	"SEARCH_MIN_INDEX_RESULTS",
	"SEARCH_INDEX_ATTEMPTS",
	"SEARCH_INDEX_PAGE_SIZE",
	"SEARCH_SPECULATIVE_FALLBACK",
	"INDEX_PATH",
	"INDEX_IN_MEMORY",
	"STORE_DSN",
	"SEARCHLOG_ENABLED",
	"SEARCHLOG_PATH",
	"SEARCHLOG_IN_MEMORY",
	"WORKER_POOL_SIZE",
	"CATALOG_SEED_FILE",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_CALLER",
	"SERVICE_NAME",
	"APP_ENV",
}

// clearEnvVars unsets all config variables and restores them after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range configEnvVars {
		if old, ok := os.LookupEnv(v); ok {
			t.Cleanup(func() { os.Setenv(v, old) })
		}
		os.Unsetenv(v)
	}
}

// setEnvVars sets multiple environment variables for the duration of the test.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 3, cfg.Search.MinResults)
	assert.Equal(t, 3, cfg.Search.MinIndexResults)
	assert.Equal(t, 2, cfg.Search.IndexAttempts)
	assert.Equal(t, 20, cfg.Search.IndexPageSize)
	assert.False(t, cfg.Search.SpeculativeFallback)

	assert.Equal(t, "data/itineraries.bleve", cfg.Index.Path)
	assert.False(t, cfg.Index.InMemory)
	assert.Contains(t, cfg.Store.DSN, "_journal_mode=WAL")
	assert.True(t, cfg.SearchLog.Enabled)
	assert.Equal(t, "data/searchlog", cfg.SearchLog.Path)
	assert.Equal(t, 16, cfg.Workers.PoolSize)
	assert.Empty(t, cfg.Catalog.SeedFile)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "itinerary-search", cfg.Logging.ServiceName)
	assert.Equal(t, "development", cfg.App.Env)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"SERVER_PORT":                 "3000",
		"SEARCH_TIMEOUT":              "2s",
		"SEARCH_MIN_RESULTS":          "5",
		"SEARCH_MIN_INDEX_RESULTS":    "4",
		"SEARCH_INDEX_ATTEMPTS":       "1",
		"SEARCH_INDEX_PAGE_SIZE":      "50",
		"SEARCH_SPECULATIVE_FALLBACK": "true",
		"INDEX_IN_MEMORY":             "true",
		"STORE_DSN":                   "file::memory:?cache=shared",
		"SEARCHLOG_ENABLED":           "false",
		"WORKER_POOL_SIZE":            "4",
		"CATALOG_SEED_FILE":           "testdata/catalog.yaml",
		"LOG_LEVEL":                   "debug",
		"LOG_FORMAT":                  "console",
		"APP_ENV":                     "production",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 5, cfg.Search.MinResults)
	assert.Equal(t, 4, cfg.Search.MinIndexResults)
	assert.Equal(t, 1, cfg.Search.IndexAttempts)
	assert.Equal(t, 50, cfg.Search.IndexPageSize)
	assert.True(t, cfg.Search.SpeculativeFallback)
	assert.True(t, cfg.Index.InMemory)
	assert.Equal(t, "file::memory:?cache=shared", cfg.Store.DSN)
	assert.False(t, cfg.SearchLog.Enabled)
	assert.Equal(t, 4, cfg.Workers.PoolSize)
	assert.Equal(t, "testdata/catalog.yaml", cfg.Catalog.SeedFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{"port zero", map[string]string{"SERVER_PORT": "0"}, "SERVER_PORT must be between 1 and 65535"},
		{"port too high", map[string]string{"SERVER_PORT": "65536"}, "SERVER_PORT must be between 1 and 65535"},
		{"zero read timeout", map[string]string{"SERVER_READ_TIMEOUT": "0s"}, "SERVER_READ_TIMEOUT must be positive"},
		{"zero write timeout", map[string]string{"SERVER_WRITE_TIMEOUT": "0s"}, "SERVER_WRITE_TIMEOUT must be positive"},
		{"zero search timeout", map[string]string{"SEARCH_TIMEOUT": "0s"}, "SEARCH_TIMEOUT must be positive"},
		{"zero min results", map[string]string{"SEARCH_MIN_RESULTS": "0"}, "SEARCH_MIN_RESULTS must be at least 1"},
		{"zero min index results", map[string]string{"SEARCH_MIN_INDEX_RESULTS": "0"}, "SEARCH_MIN_INDEX_RESULTS must be at least 1"},
		{"too many index attempts", map[string]string{"SEARCH_INDEX_ATTEMPTS": "6"}, "SEARCH_INDEX_ATTEMPTS must be between 1 and 5"},
		{"page size below floor", map[string]string{"SEARCH_INDEX_PAGE_SIZE": "2"}, "SEARCH_INDEX_PAGE_SIZE"},
		{"zero pool size", map[string]string{"WORKER_POOL_SIZE": "0"}, "WORKER_POOL_SIZE must be at least 1"},
		{"invalid log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL must be one of"},
		{"invalid log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT must be one of"},
		{"invalid app env", map[string]string{"APP_ENV": "test"}, "APP_ENV must be one of"},
		{"unparseable duration", map[string]string{"SEARCH_TIMEOUT": "soon"}, "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, tt.env)

			cfg, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_InMemoryRelaxesPaths(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"INDEX_IN_MEMORY":     "true",
		"INDEX_PATH":          "",
		"SEARCHLOG_IN_MEMORY": "true",
		"SEARCHLOG_PATH":      "",
	})

	_, err := Load()
	require.NoError(t, err)
}

func TestMustLoad(t *testing.T) {
	clearEnvVars(t)
	assert.NotPanics(t, func() { MustLoad() })

	setEnvVars(t, map[string]string{"SERVER_PORT": "invalid"})
	assert.Panics(t, func() { MustLoad() })
}
