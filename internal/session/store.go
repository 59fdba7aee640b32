package session

import (
	"context"
	"errors"
	"sync"
)

// Fixed keys the resolvers persist under. A session owns its whole key
// set; there is exactly one logical writer per key.
const (
	KeyPropertySlug = "current_property_slug"
	KeyPropertyData = "current_property_data"
	KeyGuestToken   = "guest_token"
	KeyGuestBooking = "guest_booking"
)

// ErrNotCached is returned by Store.Get for keys that were never written.
var ErrNotCached = errors.New("session: key not cached")

// Store is the durable per-session key-value storage both resolvers
// write through. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, keys ...string) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps session state in process memory. Used in tests and
// for single-process setups that do not need persistence across restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotCached
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}
