package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"tiempo/internal/database/migrations"
	"tiempo/internal/tracker"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Compile-time check that Store implements the service's Store interface.
var _ tracker.Store = (*Store)(nil)

// ErrNotFound is returned when an operation expects exactly one row and
// none matches. Callers check it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store wraps the single shared SQLite handle. Every exported method takes
// the mutex for the duration of its statements, so there is one outstanding
// writer at a time (single desktop user, per the concurrency model).
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at path.
// path can be a file path or ":memory:" for an in-memory database.
func NewStore(path string) (*Store, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// NewStoreFromDB wraps an existing database connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite connection with appropriate
// PRAGMAs. Exported for tools and tests that need a properly configured
// connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward
	// compatibility). The schema relies on ON DELETE SET NULL / CASCADE.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *Store) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *Store) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate brings the schema to the latest version.
func (s *Store) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Timestamps are stored as RFC3339 UTC text, the format existing
// databases were written with.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// parseTime parses a stored timestamp. A malformed value fails the
// enclosing query with an error naming the row and column, so a corrupt
// row is diagnosable instead of panicking the read.
func parseTime(value, table, column, id string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed %s.%s for row %s: %w", table, column, id, err)
	}
	return t, nil
}

func parseTimePtr(value sql.NullString, table, column, id string) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String, table, column, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat64(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
