package cache

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store. Entries do not survive restarts; it is
// meant for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	logger  Logger
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]string{},
		logger:  defLogger{},
	}
}

// WithLogger overrides the store logger.
func (m *MemoryStore) WithLogger(logger Logger) *MemoryStore {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *MemoryStore) GetString(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return raw, nil
}

func (m *MemoryStore) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := m.GetString(ctx, key)
	if err != nil {
		return err
	}
	return decodeJSON(m.logger, key, raw, dest)
}

func (m *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]string{}
	return nil
}

var _ Store = (*MemoryStore)(nil)
