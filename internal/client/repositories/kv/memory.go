package kv

import (
	"context"
	"maps"
	"strings"
	"sync"
)

// MemoryStore keeps entries in a map. It satisfies Store for tests and for
// sessions that should leave nothing on disk.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneBytes(m.data[key]), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneBytes(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return listPrefix(m.data, prefix), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

// WithTx holds the store lock for the whole callback, so transactions are
// serialized. fn must only use the Repository it is given.
func (m *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &memoryTx{data: maps.Clone(m.data)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}

// memoryTx works on a private copy that replaces the store data on commit.
type memoryTx struct {
	data map[string][]byte
}

func (t *memoryTx) Get(_ context.Context, key string) ([]byte, error) {
	return cloneBytes(t.data[key]), nil
}

func (t *memoryTx) Set(_ context.Context, key string, value []byte) error {
	t.data[key] = cloneBytes(value)
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	delete(t.data, key)
	return nil
}

func (t *memoryTx) List(_ context.Context, prefix string) (map[string][]byte, error) {
	return listPrefix(t.data, prefix), nil
}

func (t *memoryTx) Clear(_ context.Context) error {
	clear(t.data)
	return nil
}

func listPrefix(data map[string][]byte, prefix string) map[string][]byte {
	out := make(map[string][]byte)
	for k, v := range data {
		if strings.HasPrefix(k, prefix) {
			out[k] = cloneBytes(v)
		}
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
