// Package store is the SQLite-backed record store for transactions,
// categories and budgets, plus the aggregation queries over them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/gagyebu/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DefaultFileName is the database file created inside the data directory.
const DefaultFileName = "family_budget.db"

// timeLayout keeps createdAt values fixed-width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000Z"

// DB provides durable CRUD over the ledger database.
type DB struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Option configures a DB at Open time.
type Option func(*DB)

// WithClock overrides the clock used for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(d *DB) { d.now = now }
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens or creates the database at dbPath and initializes it.
func Open(ctx context.Context, dbPath string, opts ...Option) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	d := &DB{db: db, path: dbPath, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Initialize creates the schema if absent and seeds the default
// categories. It is safe to call on every start.
func (d *DB) Initialize(ctx context.Context) error {
	if err := runMigrations(d.path); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if err := d.seedCategories(ctx); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	return nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) seedCategories(ctx context.Context) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		now := d.stamp()
		for _, name := range model.ExpenseCategories {
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO categories (name, isDefault, createdAt) VALUES (?, 1, ?)`,
				name, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (d *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) stamp() string {
	return formatTime(d.now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullCategory(c *string) any {
	if c == nil {
		return nil
	}
	return *c
}
