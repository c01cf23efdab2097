package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSnapshot is returned by Storage.Load when nothing was saved under the key.
var ErrNoSnapshot = errors.New("cart: no snapshot")

// Storage persists whole cart snapshots under a single key.
// Save replaces the previous value; there is no append log.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStorage keeps snapshots in process memory.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
