// Package store persists itineraries and catalog primitives in SQLite and
// answers structured fallback queries and catalog snapshots.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// DefaultMaxResults bounds the rows returned by one fallback query.
const DefaultMaxResults = 50

// timeLayout is fixed-width so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05Z"

// openEnd stands in for a missing availability end.
var openEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Tag kinds stored in itinerary_tags.
const (
	kindLocation = "location"
	kindActivity = "activity"
	kindLodging  = "lodging"
)

// Config configures the SQLite store.
type Config struct {
	// DSN is a go-sqlite3 data source name, e.g. "file:data/catalog.db?_journal_mode=WAL"
	DSN string

	// MaxResults bounds the rows returned by Query
	MaxResults int
}

// Store manages the itinerary and catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
	log        *logger.Logger
}

var (
	_ domain.ItineraryStore = (*Store)(nil)
	_ domain.CatalogReader  = (*Store)(nil)
)

// Open opens or creates the database and its schema.
func Open(cfg Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := ensureDir(cfg.DSN); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if isMemory(cfg.DSN) {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	s := &Store{
		db:         db,
		maxResults: maxResults,
		log:        log.WithComponent("store"),
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) createSchema() error {
	statements := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS itineraries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			transportation TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL,
			duration_days INTEGER NOT NULL,
			capacity_adults INTEGER NOT NULL,
			capacity_children INTEGER NOT NULL DEFAULT 0,
			capacity_infants INTEGER NOT NULL DEFAULT 0,
			available_from TEXT,
			available_to TEXT,
			media_refs TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS itinerary_tags (
			itinerary_id TEXT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (itinerary_id, kind, tag)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_itinerary_tags_kind_tag ON itinerary_tags(kind, tag)`,
		`CREATE TABLE IF NOT EXISTS catalog_locations (
			name TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_activities (
			id TEXT PRIMARY KEY,
			tag TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL,
			duration_hours REAL NOT NULL DEFAULT 0,
			media_refs TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_lodging (
			id TEXT PRIMARY KEY,
			tag TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			nightly_price REAL NOT NULL,
			capacity_adults INTEGER NOT NULL,
			capacity_children INTEGER NOT NULL DEFAULT 0,
			capacity_infants INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_transportation (
			id TEXT PRIMARY KEY,
			tag TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ensureDir creates the parent directory of a file-backed DSN.
func ensureDir(dsn string) error {
	if isMemory(dsn) {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value sql.NullString) (time.Time, bool, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(timeLayout, value.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing stored time %q: %w", value.String, err)
	}
	return t, true, nil
}

func joinRefs(refs []string) string {
	return strings.Join(refs, "\n")
}

func splitRefs(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, "\n")
}
