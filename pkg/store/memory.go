package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
)

// MemoryStore is an in-process store for tests and embedded usage.
type MemoryStore struct {
	mu           sync.RWMutex
	compositions map[uuid.UUID]*Composition
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{compositions: make(map[uuid.UUID]*Composition)}
}

// Get retrieves a composition by ID.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Composition, error) {
	s.mu.RLock()
	c, ok := s.compositions[id]
	s.mu.RUnlock()

	observability.Store().OnStoreGet("memory", id.String(), ok)
	if !ok {
		return nil, errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}
	clone := *c
	return &clone, nil
}

// List returns all compositions, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Composition, error) {
	s.mu.RLock()
	out := make([]*Composition, 0, len(s.compositions))
	for _, c := range s.compositions {
		clone := *c
		out = append(out, &clone)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Put inserts or replaces a composition.
func (s *MemoryStore) Put(ctx context.Context, c *Composition) error {
	c.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	clone := *c
	s.compositions[c.ID] = &clone
	s.mu.Unlock()

	size := 0
	if c.Spec != nil {
		size = c.Spec.ClipCount()
	}
	observability.Store().OnStorePut("memory", c.ID.String(), size)
	return nil
}

// Delete removes a composition.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.compositions[id]
	if ok {
		delete(s.compositions, id)
	}
	s.mu.Unlock()

	if !ok {
		return errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}
	observability.Store().OnStoreDelete("memory", id.String())
	return nil
}

var _ Store = (*MemoryStore)(nil)
