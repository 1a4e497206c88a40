package cache

import (
	"context"
	"sync"
)

// DefaultMemoryEntries bounds a Memory cache built with a non-positive size.
const DefaultMemoryEntries = 1024

// Memory is an in-process cache used when no Redis URL is configured. Once
// full, the oldest key is evicted first.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	order []string
	max   int
}

// NewMemory constructs an empty Memory cache holding at most maxEntries keys.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &Memory{data: make(map[string][]byte), max: maxEntries}
}

// Get returns the value stored under key or ErrMiss.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		for len(m.order) >= m.max {
			delete(m.data, m.order[0])
			m.order = m.order[1:]
		}
		m.order = append(m.order, key)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Len reports the number of cached keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
