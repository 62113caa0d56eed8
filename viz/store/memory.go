package store

import (
	"context"
	"sync"
)

// MemStore is the in-memory implementation of Store[S]. It is the only
// backend this core ships: session caches are ephemeral by design, and
// persisting analysis history is explicitly out of scope.
//
// Thread-safe. Memory grows with session count; call Clear when a session
// ends.
type MemStore[S any] struct {
	mu        sync.RWMutex
	converted map[string][]S
	resolved  map[string]map[int]map[string]any
}

// NewMemStore creates an empty in-memory session cache.
func NewMemStore[S any]() *MemStore[S] {
	return &MemStore[S]{
		converted: make(map[string][]S),
		resolved:  make(map[string]map[int]map[string]any),
	}
}

// SaveConverted caches a session's converted step sequence, replacing any
// prior entry.
func (m *MemStore[S]) SaveConverted(_ context.Context, session string, steps []S) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.converted[session] = steps
	return nil
}

// LoadConverted returns the cached converted sequence.
func (m *MemStore[S]) LoadConverted(_ context.Context, session string) ([]S, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	steps, ok := m.converted[session]
	if !ok {
		return nil, ErrNotFound
	}
	return steps, nil
}

// SaveResolved caches one step's resolved visualization state.
func (m *MemStore[S]) SaveResolved(_ context.Context, session string, step int, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolved[session] == nil {
		m.resolved[session] = make(map[int]map[string]any)
	}
	m.resolved[session][step] = data
	return nil
}

// LoadResolved returns one step's cached resolved state.
func (m *MemStore[S]) LoadResolved(_ context.Context, session string, step int) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.resolved[session][step]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Clear drops everything cached for a session.
func (m *MemStore[S]) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.converted, session)
	delete(m.resolved, session)
	return nil
}
