package recordstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps records in process memory. Records survive Close
// within the process, so the close and reopen cycle behaves like the
// durable backends as long as the store value itself is kept.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Open is a no-op; the map is always reachable.
func (s *MemoryStore) Open(ctx context.Context) error {
	return nil
}

// Save writes a copy of payload under id, replacing any existing record.
func (s *MemoryStore) Save(ctx context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.records[id] = cp
	return nil
}

// Get returns a copy of the payload stored under id, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, nil
}

// Delete removes the record under id. Absent ids are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

// Close is a no-op; records are kept so the store can be reused.
func (s *MemoryStore) Close() {}

var _ Store = (*MemoryStore)(nil)
