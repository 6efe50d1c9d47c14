// Package registry provides named, pluggable lookup tables for effect,
// transition, and animation implementations.
//
// Each category keeps its own registry, pre-seeded with built-ins so
// callers get usable defaults with zero configuration. Implementations
// are registered under string keys and resolved by the validated build;
// Discover adds data-driven implementations from TOML descriptor files.
//
// Registries are safe for concurrent reads after setup; Register and
// Discover calls require external synchronization.
package registry

import (
	"maps"
	"slices"

	"github.com/reelkit/reelkit/pkg/errors"
)

// Params carries the placement context an implementation turns into a
// renderer filter expression.
type Params struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64 // seconds the clip or transition covers
	Source   string  // clip source reference, when applicable
	Options  map[string]any
}

// Applier is the capability contract every plugin category shares: turn
// placement parameters into a renderer filter expression (ffmpeg filter
// syntax). Anything implementing it can be registered.
type Applier interface {
	Apply(p Params) (string, error)
}

// ApplierFunc adapts a plain function to the Applier interface.
type ApplierFunc func(p Params) (string, error)

// Apply implements Applier.
func (f ApplierFunc) Apply(p Params) (string, error) { return f(p) }

// Validator checks a caller-supplied configuration for one entry.
type Validator func(config map[string]any) error

type entry struct {
	impl      Applier
	validator Validator
	meta      map[string]any
}

// Registry is a registration-ordered name -> implementation table for one
// plugin category.
type Registry struct {
	category string
	code     errors.Code // not-found code for this category
	entries  map[string]entry
	order    []string
}

// New creates an empty registry for a category ("effects", "transitions",
// or "animations").
func New(category string) *Registry {
	return &Registry{
		category: category,
		code:     notFoundCode(category),
		entries:  make(map[string]entry),
	}
}

func notFoundCode(category string) errors.Code {
	switch category {
	case "effects":
		return errors.ErrCodeEffectNotFound
	case "transitions":
		return errors.ErrCodeTransitionNotFound
	case "animations":
		return errors.ErrCodeAnimationNotFound
	}
	return errors.ErrCodeNotFound
}

// Category returns the registry's category name.
func (r *Registry) Category() string { return r.category }

// RegisterOption configures a registration.
type RegisterOption func(*entry)

// WithValidator attaches a configuration validator to the entry.
func WithValidator(v Validator) RegisterOption {
	return func(e *entry) { e.validator = v }
}

// WithMetadata attaches free-form metadata to the entry.
func WithMetadata(meta map[string]any) RegisterOption {
	return func(e *entry) { e.meta = maps.Clone(meta) }
}

// Register binds an implementation to a name. Registering an existing
// name silently overwrites the implementation while keeping its original
// position in List.
func (r *Registry) Register(name string, impl Applier, opts ...RegisterOption) error {
	if err := errors.ValidateRegistryName(name); err != nil {
		return err
	}
	if impl == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s %q: implementation must not be nil", r.category, name)
	}

	e := entry{impl: impl}
	for _, opt := range opts {
		opt(&e)
	}

	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = e
	return nil
}

// Get returns the implementation registered under name.
func (r *Registry) Get(name string) (Applier, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, errors.New(r.code, "no %s entry named %q", r.category, name)
	}
	return e.impl, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Validate runs the entry's validator against config. Entries without a
// validator are permissive: any config passes.
func (r *Registry) Validate(name string, config map[string]any) error {
	e, ok := r.entries[name]
	if !ok {
		return errors.New(r.code, "no %s entry named %q", r.category, name)
	}
	if e.validator == nil {
		return nil
	}
	return e.validator(config)
}

// Meta returns the metadata attached to an entry, if any.
func (r *Registry) Meta(name string) (map[string]any, bool) {
	e, ok := r.entries[name]
	if !ok || e.meta == nil {
		return nil, ok
	}
	return maps.Clone(e.meta), true
}

// List returns all registered names in registration order.
func (r *Registry) List() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }
