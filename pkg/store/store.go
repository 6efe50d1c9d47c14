// Package store persists named compositions.
//
// A Composition wraps an immutable spec snapshot with identity and
// timestamps, so drafts can be saved, listed, and reloaded into a
// builder later. Three backends ship:
//   - memory: in-process storage for tests and embedding
//   - file:   JSON files in a config directory, for CLI usage
//   - mongo:  MongoDB, for server deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit/pkg/spec"
)

// Composition is a stored spec with identity and bookkeeping.
type Composition struct {
	ID        uuid.UUID  `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Spec      *spec.Spec `json:"spec" bson:"spec"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// New wraps a spec in a fresh composition.
func New(name string, s *spec.Spec) *Composition {
	now := time.Now().UTC()
	return &Composition{
		ID:        uuid.New(),
		Name:      name,
		Spec:      s,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for composition storage backends.
type Store interface {
	// Get retrieves a composition by ID.
	// Returns a CompositionNotFound error when the ID is unknown.
	Get(ctx context.Context, id uuid.UUID) (*Composition, error)

	// List returns all stored compositions, newest first.
	List(ctx context.Context) ([]*Composition, error)

	// Put inserts or replaces a composition and bumps UpdatedAt.
	Put(ctx context.Context, c *Composition) error

	// Delete removes a composition.
	// Returns a CompositionNotFound error when the ID is unknown.
	Delete(ctx context.Context, id uuid.UUID) error
}
