package storage

import (
	"context"
	"sync"
)

// MemoryProvider keeps values in a map. It backs tests and the "memory"
// backend for throwaway sessions.
type MemoryProvider struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{values: make(map[string]string)}
}

func (m *MemoryProvider) Init(context.Context) error { return nil }
func (m *MemoryProvider) Close() error               { return nil }
func (m *MemoryProvider) Name() string               { return "memory" }

func (m *MemoryProvider) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryProvider) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryProvider) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
	return nil
}

// Writes counts every Set since creation.
func (m *MemoryProvider) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
