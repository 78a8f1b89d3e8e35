// Package memstore is an in-memory pool.Store for tests and ephemeral use.
package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/lexitag/pkg/lexitag/pool"
)

type memStore struct {
	mu      sync.RWMutex
	entries map[string]pool.Entry
}

// New creates an empty in-memory store.
func New() pool.Store {
	return &memStore{entries: make(map[string]pool.Entry)}
}

func (m *memStore) Get(_ context.Context, key string) (pool.Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *memStore) Put(_ context.Context, e pool.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[pool.Key(e.Word)] = e
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memStore) All(_ context.Context) ([]pool.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]pool.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }
