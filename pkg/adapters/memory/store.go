package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/animgraph/pkg/domain"
)

// Store implements ports.SlotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]domain.Slot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]domain.Slot),
	}
}

func clone(slot domain.Slot) *domain.Slot {
	slot.Content = append([]byte(nil), slot.Content...)
	return &slot
}

// Get retrieves a copy of the slot so callers can't mutate the store.
func (s *Store) Get(ctx context.Context, container, key string) (*domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.data[container][key]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return clone(slot), nil
}

// Put stores a copy of the slot.
func (s *Store) Put(ctx context.Context, container string, slot *domain.Slot) error {
	copied := clone(*slot)

	s.mu.Lock()
	defer s.mu.Unlock()
	slots, ok := s.data[container]
	if !ok {
		slots = make(map[string]domain.Slot)
		s.data[container] = slots
	}
	slots[slot.Key] = *copied
	return nil
}

// Delete removes the slot.
func (s *Store) Delete(ctx context.Context, container, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[container], key)
	return nil
}

// List returns the slot keys of a container.
func (s *Store) List(ctx context.Context, container string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data[container]))
	for key := range s.data[container] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
