package kv

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store. It is the default for single-instance
// deployments and the fake used throughout the tests.
type MemoryStore struct {
	entries map[string]memoryEntry
	mutex   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mutex.RLock()
	entry, exists := m.entries[key]
	m.mutex.RUnlock()

	if !exists {
		return "", ErrNotFound
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mutex.Lock()
		delete(m.entries, key)
		m.mutex.Unlock()
		return "", ErrNotFound
	}

	return entry.value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mutex.Lock()
	m.entries[key] = entry
	m.mutex.Unlock()

	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	delete(m.entries, key)
	m.mutex.Unlock()

	return nil
}

// Size returns the current number of entries, expired or not.
func (m *MemoryStore) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.entries)
}
