package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
)

// FileStore is a file-based composition store for CLI usage.
// Compositions are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based composition store.
// If baseDir is empty, defaults to ~/.config/reelkit/compositions/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "reelkit", "compositions")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create composition dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id uuid.UUID) string {
	return filepath.Join(s.baseDir, id.String()+".json")
}

// Get retrieves a composition by ID.
func (s *FileStore) Get(ctx context.Context, id uuid.UUID) (*Composition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		observability.Store().OnStoreGet("file", id.String(), false)
		return nil, errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read composition file")
	}

	var c Composition
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse composition %s", id)
	}

	observability.Store().OnStoreGet("file", id.String(), true)
	return &c, nil
}

// List returns all stored compositions, newest first.
func (s *FileStore) List(ctx context.Context) ([]*Composition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirents, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read composition dir")
	}

	var out []*Composition
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, de.Name()))
		if err != nil {
			continue
		}
		var c Composition
		if err := json.Unmarshal(data, &c); err != nil {
			// Skip corrupt entries rather than failing the whole listing.
			continue
		}
		out = append(out, &c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Put inserts or replaces a composition.
func (s *FileStore) Put(ctx context.Context, c *Composition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal composition %s", c.ID)
	}
	if err := os.WriteFile(s.path(c.ID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write composition file")
	}

	observability.Store().OnStorePut("file", c.ID.String(), len(data))
	return nil
}

// Delete removes a composition.
func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove composition file")
	}

	observability.Store().OnStoreDelete("file", id.String())
	return nil
}

var _ Store = (*FileStore)(nil)
