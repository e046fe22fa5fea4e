// Package recordstore persists keyed opaque payloads across process
// restarts. A Store keeps a single logical table of id to payload pairs
// with upsert semantics; backings exist for SQL databases, Redis, and
// process memory.
package recordstore

import (
	"context"
	"fmt"
)

// Store is a durable keyed record store. Implementations serialize all
// operations internally, so a Store is safe for concurrent use.
//
// A Store is either closed or open. Every operation on a closed store
// opens it first, so an explicit Open is only needed to surface
// connection problems early.
type Store interface {
	// Open establishes the backing connection. It is a no-op on an
	// already open store.
	Open(ctx context.Context) error

	// Save writes payload under id, replacing any existing record.
	Save(ctx context.Context, id string, payload []byte) error

	// Get returns the payload stored under id. Absence is reported as
	// ErrNotFound, never as a nil payload with a nil error.
	Get(ctx context.Context, id string) ([]byte, error)

	// Delete removes the record under id. Deleting an absent id is not
	// an error.
	Delete(ctx context.Context, id string) error

	// Close releases the backing connection. It never fails: a store
	// that cannot release cleanly is closed anyway, and the next
	// operation reopens it.
	Close()
}

// Config selects a backing and its location.
type Config struct {
	// Backend is one of sqlite, postgres, mysql, redis, or memory.
	// Empty defaults to sqlite.
	Backend string `yaml:"backend"`

	// Location is the file path (sqlite) or DSN (postgres, mysql).
	Location string `yaml:"location"`

	// Redis holds the connection settings for the redis backend.
	Redis RedisConfig `yaml:"redis"`
}

// New builds the Store described by cfg. The connection is not
// established until the store is first used.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite", "sqlite3", "postgres", "mysql":
		return NewSQLStore(cfg.Backend, cfg.Location)
	case "redis":
		return NewRedisStore(cfg.Redis)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown record store backend: %q", cfg.Backend)
	}
}
