package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/reelkit/reelkit/pkg/errors"
)

// FileProvider reads a single TOML file into flat dotted keys. A missing
// file is an empty provider, not an error, so the standard cascade works
// on machines where only some locations exist.
type FileProvider struct {
	path string

	mu     sync.RWMutex
	values map[string]any
}

// NewFileProvider loads path immediately.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Refresh(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the file this provider reads.
func (p *FileProvider) Path() string { return p.path }

// Get returns the value for key, or def when unset.
func (p *FileProvider) Get(key string, def any) any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Refresh re-reads the file from disk.
func (p *FileProvider) Refresh() error {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		p.mu.Lock()
		p.values = nil
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "reading config %q", p.path)
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %q", p.path)
	}

	flat := make(map[string]any)
	flatten("", tree, flat)

	p.mu.Lock()
	p.values = flat
	p.mu.Unlock()
	return nil
}

// flatten converts nested TOML tables into dotted keys: a [defaults]
// table with duration = 5 becomes "defaults.duration".
func flatten(prefix string, tree map[string]any, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}

// Standard returns the standard three-layer cascade: system, then user,
// then the project file in dir (usually the working directory).
func Standard(dir string) (*Layered, error) {
	paths := []string{
		"/etc/reelkit/config.toml",
		filepath.Join(userConfigDir(), "reelkit", "config.toml"),
		filepath.Join(dir, "reelkit.toml"),
	}

	providers := make([]Provider, 0, len(paths))
	for _, path := range paths {
		p, err := NewFileProvider(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		providers = append(providers, p)
	}
	return NewLayered(providers...), nil
}

// userConfigDir resolves $XDG_CONFIG_HOME with the usual ~/.config
// fallback.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}
