package chunkcache

import (
	"context"
	"sync"
)

// Memory is an in-process chunk cache. Entries never expire: the locale set
// is finite and each chunk is small, so the working set is bounded by the
// number of active locales. An optional entry cap guards against misuse with
// unbounded keys; eviction is oldest-first.
type Memory struct {
	items  map[string][]byte
	order  []string
	max    int
	mu     sync.RWMutex
	closed bool
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMaxEntries bounds the cache; the oldest entry is evicted when full.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.max = n
		}
	}
}

// NewMemory creates an in-process chunk cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{items: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	data, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *Memory) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if _, exists := m.items[key]; !exists {
		if m.max > 0 && len(m.items) >= m.max {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.items, oldest)
		}
		m.order = append(m.order, key)
	}
	m.items[key] = data

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if _, exists := m.items[key]; exists {
		delete(m.items, key)
		for i, k := range m.order {
			if k == key {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Close marks the cache closed; subsequent operations return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	m.order = nil
	return nil
}
