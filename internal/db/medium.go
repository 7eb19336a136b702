package db

import (
	"context"
	"sync"
)

// Medium is a string keyed store of serialized collections.
// Implementations must be safe for concurrent use.
type Medium interface {
	// Get returns the value stored under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value stored under key
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Memory keeps entries in process memory
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }

var (
	_ Medium = (*Memory)(nil)
	_ Medium = (*SQLite)(nil)
	_ Medium = (*Redis)(nil)
)
