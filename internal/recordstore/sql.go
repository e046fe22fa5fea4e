package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore keeps records in a relational table, one row per id. A single
// mutex serializes all operations, including the open and close state
// transitions.
type SQLStore struct {
	mu       sync.Mutex
	dialect  string
	location string
	db       *sql.DB // nil while closed
}

// NewSQLStore prepares a store for the given dialect and location
// (a file path for sqlite, a DSN for postgres and mysql). No connection
// is made until the store is first used.
func NewSQLStore(dialect, location string) (*SQLStore, error) {
	normalized := dialect
	switch dialect {
	case "", "sqlite3":
		normalized = "sqlite"
	}

	switch normalized {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported dialect: %s (supported: sqlite, postgres, mysql)", dialect)
	}

	if location == "" {
		return nil, fmt.Errorf("record store location is required")
	}

	return &SQLStore{dialect: normalized, location: location}, nil
}

// Open establishes the connection and creates the records table.
func (s *SQLStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(ctx)
}

func (s *SQLStore) openLocked(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if s.dialect == "sqlite" {
		if dir := filepath.Dir(s.location); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("%w: create data directory: %v", ErrUnavailable, err)
			}
		}
	}

	db, err := sql.Open(s.dialect, s.location)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrUnavailable, s.dialect, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return classify("ping", err)
	}

	if _, err := db.ExecContext(ctx, createRecordsTableSQL(s.dialect)); err != nil {
		db.Close()
		return classify("create records table", err)
	}

	s.db = db
	return nil
}

func createRecordsTableSQL(dialect string) string {
	switch dialect {
	case "postgres":
		return `CREATE TABLE IF NOT EXISTS records (id TEXT PRIMARY KEY, payload BYTEA NOT NULL)`
	case "mysql":
		return `CREATE TABLE IF NOT EXISTS records (id VARCHAR(255) PRIMARY KEY, payload LONGBLOB NOT NULL)`
	default:
		return `CREATE TABLE IF NOT EXISTS records (id TEXT PRIMARY KEY, payload BLOB NOT NULL)`
	}
}

// Save writes payload under id, replacing any existing record.
func (s *SQLStore) Save(ctx context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return err
	}

	query := `INSERT INTO records (id, payload) VALUES (?, ?)
ON DUPLICATE KEY UPDATE payload = VALUES(payload)`
	switch s.dialect {
	case "postgres":
		query = `INSERT INTO records (id, payload) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`
	case "sqlite":
		query = `INSERT INTO records (id, payload) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`
	}

	if _, err := s.db.ExecContext(ctx, query, id, payload); err != nil {
		return classify("save record", err)
	}
	return nil
}

// Get returns the payload stored under id, or ErrNotFound.
func (s *SQLStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return nil, err
	}

	query := `SELECT payload FROM records WHERE id = ?`
	if s.dialect == "postgres" {
		query = `SELECT payload FROM records WHERE id = $1`
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, classify("query record", err)
	}
	return payload, nil
}

// Delete removes the record under id. Absent ids are ignored.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return err
	}

	query := `DELETE FROM records WHERE id = ?`
	if s.dialect == "postgres" {
		query = `DELETE FROM records WHERE id = $1`
	}

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return classify("delete record", err)
	}
	return nil
}

// Close releases the database connection. Release errors are discarded;
// the store is closed either way and reopens on next use.
func (s *SQLStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return
	}
	_ = s.db.Close()
	s.db = nil
}

var _ Store = (*SQLStore)(nil)
