// Package searchlog keeps an append-only log of completed searches in an
// embedded Badger database. Records are msgpack-encoded and keyed by
// creation time so the newest can be listed first.
package searchlog

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/retry"
)

const recordPrefix = "search/"

// DefaultRecentLimit is used by Recent when limit is not positive.
const DefaultRecentLimit = 20

// ErrClosed is returned after Close.
var ErrClosed = errors.New("search log closed")

// Config configures the search log database.
type Config struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string

	InMemory bool
}

// Log stores SearchRecords.
type Log struct {
	db  *badger.DB
	log *logger.Logger
}

var _ domain.SearchRecorder = (*Log)(nil)

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct {
	log *logger.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, items ...interface{}) {
	l.log.Error().Msg(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Warningf(msg string, items ...interface{}) {
	l.log.Warn().Msg(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Infof(msg string, items ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Debugf(msg string, items ...interface{}) {
	l.log.Debug().Msg(fmt.Sprintf(msg, items...))
}

// Open opens the search log, creating its directory when needed.
func Open(cfg Config, log *logger.Logger) (*Log, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("searchlog")

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("search log path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating search log directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = &badgerLogger{log: log}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening search log: %w", err)
	}

	return &Log{db: db, log: log}, nil
}

// Close closes the database. It is safe to call more than once.
func (l *Log) Close() error {
	if l.db.IsClosed() {
		return nil
	}
	return l.db.Close()
}

// Record implements domain.SearchRecorder. Writes that lose a transaction
// conflict are retried.
func (l *Log) Record(ctx context.Context, record domain.SearchRecord) error {
	if record.ID == "" {
		return fmt.Errorf("search record has no id")
	}
	if l.db.IsClosed() {
		return ErrClosed
	}

	value, err := msgpack.Marshal(&record)
	if err != nil {
		return fmt.Errorf("encoding search record: %w", err)
	}
	key := recordKey(record)

	cfg := retry.WriteConflictConfig.WithRetryIf(func(err error) bool {
		return errors.Is(err, badger.ErrConflict)
	})
	err = retry.Do(ctx, func() error {
		return l.db.Update(func(txn *badger.Txn) error {
			return txn.Set(key, value)
		})
	}, cfg)
	if err != nil {
		return fmt.Errorf("writing search record %s: %w", record.ID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if l.db.IsClosed() {
		return nil, ErrClosed
	}

	records := make([]domain.SearchRecord, 0, limit)
	prefix := []byte(recordPrefix)

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration must start past the last key under the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record domain.SearchRecord
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &record)
			})
			if err != nil {
				return fmt.Errorf("decoding search record %q: %w", it.Item().Key(), err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of stored records.
func (l *Log) Count() (int, error) {
	if l.db.IsClosed() {
		return 0, ErrClosed
	}

	count := 0
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// recordKey is the prefix, the big-endian creation time in nanoseconds and
// the search id, so keys sort chronologically.
func recordKey(record domain.SearchRecord) []byte {
	key := make([]byte, 0, len(recordPrefix)+8+1+len(record.ID))
	key = append(key, recordPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(record.CreatedAt.UnixNano()))
	key = append(key, '/')
	key = append(key, record.ID...)
	return key
}
