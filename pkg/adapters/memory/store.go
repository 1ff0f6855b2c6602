package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/bankocr/pkg/domain"
)

// Store implements ports.BatchStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Batch
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Batch),
	}
}

// Save persists a copy of the batch in memory.
func (s *Store) Save(ctx context.Context, id string, batch domain.Batch) error {
	copied := batch.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves a copy of the batch, so the caller can't mutate store state.
func (s *Store) Load(ctx context.Context, id string) (domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.data[id]
	if !ok {
		return domain.Batch{}, domain.ErrBatchNotFound
	}
	return batch.Clone(), nil
}

// Delete removes the batch.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored batch IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
