package state

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value   T
	updated time.Time
}

// MemoryStore keeps sessions in process memory. Entries older than the TTL are
// treated as absent and dropped on access.
type MemoryStore[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]memoryEntry[T]
	ttl      time.Duration
	now      clock
}

// NewMemoryStore constructs an in-memory Store. A zero ttl keeps sessions forever.
func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		sessions: make(map[int64]memoryEntry[T]),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore[T]) Load(_ context.Context, userID int64) (T, bool, error) {
	m.mu.RLock()
	entry, ok := m.sessions[userID]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false, nil
	}
	if expired(entry.updated, m.ttl, m.now()) {
		m.mu.Lock()
		delete(m.sessions, userID)
		m.mu.Unlock()
		return zero, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryStore[T]) Save(_ context.Context, userID int64, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = memoryEntry[T]{value: v, updated: m.now()}
	return nil
}

func (m *MemoryStore[T]) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// Len reports the number of stored sessions, including expired ones not yet dropped.
func (m *MemoryStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
