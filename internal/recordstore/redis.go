package recordstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the redis backend.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// RedisStore keeps records as Redis string values under a common key
// prefix, so several stores can share one database.
type RedisStore struct {
	mu     sync.Mutex
	cfg    RedisConfig
	client *redis.Client // nil while closed
}

// NewRedisStore prepares a redis-backed store. No connection is made
// until the store is first used.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "records:"
	}
	return &RedisStore{cfg: cfg}, nil
}

func (s *RedisStore) key(id string) string {
	return s.cfg.KeyPrefix + id
}

// Open establishes and verifies the connection.
func (s *RedisStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(ctx)
}

func (s *RedisStore) openLocked(ctx context.Context) error {
	if s.client != nil {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.cfg.Addr,
		Password: s.cfg.Password,
		DB:       s.cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return classify("ping", err)
	}

	s.client = client
	return nil
}

// Save writes payload under id, replacing any existing record.
func (s *RedisStore) Save(ctx context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(id), payload, 0).Err(); err != nil {
		return classify("save record", err)
	}
	return nil
}

// Get returns the payload stored under id, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return nil, err
	}

	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, classify("query record", err)
	}
	return payload, nil
}

// Delete removes the record under id. Absent ids are ignored.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(ctx); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return classify("delete record", err)
	}
	return nil
}

// Close releases the connection. Release errors are discarded; the
// store is closed either way and reopens on next use.
func (s *RedisStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return
	}
	_ = s.client.Close()
	s.client = nil
}

var _ Store = (*RedisStore)(nil)
