// Package config supplies layered builder defaults from TOML files.
//
// Values cascade across three locations, later layers winning:
//
//  1. system  (/etc/reelkit/config.toml)
//  2. user    ($XDG_CONFIG_HOME/reelkit/config.toml)
//  3. project (./reelkit.toml)
//
// Keys are flat dotted paths ("defaults.duration"). Files are read once
// at construction; call Refresh to pick up edits.
package config

import (
	"maps"
	"sync"
)

// Provider resolves configuration keys to values.
type Provider interface {
	// Get returns the value for key, or def when the key is unset.
	Get(key string, def any) any

	// Refresh re-reads the underlying sources.
	Refresh() error
}

// Static is an immutable in-memory provider, mainly for tests and for
// hosts that manage configuration themselves.
type Static map[string]any

// NewStatic copies values into a Static provider.
func NewStatic(values map[string]any) Static {
	return maps.Clone(values)
}

// Get returns the value for key, or def when unset.
func (s Static) Get(key string, def any) any {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}

// Refresh is a no-op for static providers.
func (Static) Refresh() error { return nil }

// Layered merges providers, with later providers taking precedence.
type Layered struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewLayered stacks providers lowest-precedence first.
func NewLayered(providers ...Provider) *Layered {
	return &Layered{providers: providers}
}

// missing is a unique default so Layered can tell "unset" apart from any
// legitimate stored value.
var missing = new(struct{})

// Get consults providers from highest precedence down.
func (l *Layered) Get(key string, def any) any {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.providers) - 1; i >= 0; i-- {
		if v := l.providers[i].Get(key, missing); v != any(missing) {
			return v
		}
	}
	return def
}

// Refresh re-reads every layer, returning the first failure.
func (l *Layered) Refresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.providers {
		if err := p.Refresh(); err != nil {
			return err
		}
	}
	return nil
}
