package store

import (
	"context"
	"sync"
)

// MemoryKV keeps everything in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]Entry
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]Entry)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok {
		return Entry{}, false, nil
	}
	return Entry{Value: append([]byte(nil), e.Value...), Version: e.Version}, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = Entry{Value: append([]byte(nil), e.Value...), Version: e.Version}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// Len reports how many keys are stored.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
