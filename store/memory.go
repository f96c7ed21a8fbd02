// Package store provides cart snapshot backends for the ordering engine.
package store

import (
	"context"
	"sync"

	"mealcart/domain"
)

// InMemoryStore is a thread-safe in-memory domain.CartStore
type InMemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		snaps: make(map[string]domain.Snapshot),
	}
}

// compile-time assertion that InMemoryStore implements domain.CartStore
var _ domain.CartStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	select {
	case <-ctx.Done():
		return domain.Snapshot{}, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[key]
	if !ok {
		return domain.EmptySnapshot(), nil
	}
	return snap.Clone(), nil
}

func (s *InMemoryStore) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[key] = snap.Clone()
	return nil
}
