// Package cache provides pluggable byte caches used to memoize spec
// validation results and rendered diagram artifacts.
//
// Three backends ship: FileCache for CLI usage, RedisCache for the HTTP
// server, and NullCache to disable caching entirely. Keys are produced by
// a Keyer so callers never hand-assemble key strings.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
//
// Get reports a miss with ok=false and a nil error; errors are reserved
// for backend failures. A zero TTL on Set stores the entry without
// expiration.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Keyer generates cache keys for the things reelkit memoizes.
type Keyer interface {
	// ValidationKey keys a validation verdict by the spec content hash.
	ValidationKey(specHash string) string

	// DiagramKey keys a rendered diagram by spec content hash and format.
	DiagramKey(specHash, format string) string
}

// DefaultKeyer generates namespaced keys with no tenant prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ValidationKey generates a key for a cached validation verdict.
func (k *DefaultKeyer) ValidationKey(specHash string) string {
	return "validate:" + specHash
}

// DiagramKey generates a key for a cached diagram rendering.
func (k *DefaultKeyer) DiagramKey(specHash, format string) string {
	return "diagram:" + format + ":" + specHash
}
