// Package sqlite implements the SQLite storage backend for the StoryKeeper
// dictionary: schema management, the entry, context and settings stores, and
// the exchange codec, all sharing one connection.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

const driverName = "sqlite"

var _ types.Dictionary = (*Backend)(nil)

// Backend owns the single SQLite connection and hands out the stores that
// operate on it. Callers never see the *sql.DB.
type Backend struct {
	mu       sync.RWMutex
	db       *sql.DB
	config   types.Config
	logger   *slog.Logger
	entries  *entriesTable
	contexts *contextsTable
	settings *settingsTable
	exchange *exchangeCodec
}

// Option configures a Backend at Open time.
type Option func(*Backend)

// WithLogger sets the logger used for schema migration and import messages.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Open opens the store at config.Location and initializes it: tables are
// created, missing optional columns are added, and the default contexts are
// seeded. Any failure closes the connection and is returned; the store is
// never handed out in a partially migrated state.
func Open(config types.Config, opts ...Option) (*Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}

	if !config.InMemory() {
		if err := os.MkdirAll(filepath.Dir(config.Location), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, config.Location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", config.Location, err)
	}
	// One connection for the process lifetime. An in-memory database is
	// private to its connection, so a pool would scatter the data.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	if err := migrateSchema(db, b.logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	if err := seedContexts(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding contexts: %w", err)
	}

	b.db = db
	b.entries = &entriesTable{backend: b}
	b.contexts = &contextsTable{backend: b}
	b.settings = &settingsTable{backend: b}
	b.exchange = &exchangeCodec{backend: b}

	b.logger.Debug("dictionary store opened", "location", config.Location)
	return b, nil
}

// Entries returns the entry store.
func (b *Backend) Entries() types.EntryStore { return b.entries }

// Contexts returns the context store.
func (b *Backend) Contexts() types.ContextStore { return b.contexts }

// Settings returns the settings store.
func (b *Backend) Settings() types.SettingsStore { return b.settings }

// Exchange returns the import/export codec.
func (b *Backend) Exchange() types.Exchange { return b.exchange }

// Location returns the location the backend was opened with.
func (b *Backend) Location() string { return b.config.Location }

// Close releases the connection. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// use runs fn against the open connection, holding the read lock so Close
// cannot race it. Returns ErrClosed after Close.
func (b *Backend) use(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return types.ErrClosed
	}
	return fn(b.db)
}

// withTx runs fn inside a transaction. The transaction commits only when fn
// returns nil; any error rolls every statement back.
func (b *Backend) withTx(fn func(tx *sql.Tx) error) error {
	return b.use(func(db *sql.DB) error {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}
		return nil
	})
}
