package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	return result
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "test-service"}, &buf)
	log.Info().Msg("test message")

	result := decodeLine(t, &buf)
	assert.Equal(t, "info", result["level"])
	assert.Equal(t, "test message", result["message"])
	assert.Equal(t, "test-service", result["service"])
	assert.NotEmpty(t, result["time"])
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "console", ServiceName: "test-service"}, &buf)
	log.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "INF")
}

func TestNewLogger_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logged at debug level", "debug", "debug", true},
		{"debug dropped at info level", "info", "debug", false},
		{"warn logged at info level", "info", "warn", true},
		{"info dropped at error level", "error", "info", false},
		{"invalid level falls back to info", "loud", "info", true},
		{"empty level falls back to info", "", "debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(Config{Level: tt.configLevel, Format: "json"}, &buf)

			switch tt.logLevel {
			case "debug":
				log.Debug().Msg("m")
			case "info":
				log.Info().Msg("m")
			case "warn":
				log.Warn().Msg("m")
			}

			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestNewLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", EnableCaller: true}, &buf)
	log.Info().Msg("with caller")

	result := decodeLine(t, &buf)
	assert.Contains(t, result["caller"], "logger_test.go")
}

func TestLogger_ContextHelpers(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Logger) *Logger
		key   string
		value string
	}{
		{"request id", func(l *Logger) *Logger { return l.WithRequestID("req-123") }, "request_id", "req-123"},
		{"search id", func(l *Logger) *Logger { return l.WithSearchID("s-1") }, "search_id", "s-1"},
		{"component", func(l *Logger) *Logger { return l.WithComponent("index") }, "component", "index"},
		{"arbitrary", func(l *Logger) *Logger { return l.WithContext("k", "v") }, "k", "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := tt.apply(NewWithOutput(Config{Level: "info", Format: "json"}, &buf))
			log.Info().Msg("test")

			assert.Equal(t, tt.value, decodeLine(t, &buf)[tt.key])
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("this should not appear")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.EnableCaller)
	assert.Equal(t, "itinerary-search", cfg.ServiceName)
}

func TestGlobalLogger(t *testing.T) {
	Global = nil
	t.Cleanup(func() { Global = nil })

	var buf bytes.Buffer
	SetGlobal(NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "global-test"}, &buf))

	L().Info().Msg("global info")

	assert.Contains(t, buf.String(), "global info")
	assert.Contains(t, buf.String(), "global-test")
}

func TestGlobalLoggerAutoInit(t *testing.T) {
	Global = nil
	t.Cleanup(func() { Global = nil })

	assert.NotNil(t, L())
	assert.NotNil(t, Global)
}
