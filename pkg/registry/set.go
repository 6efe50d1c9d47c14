package registry

// Set bundles the three plugin registries and answers type-existence
// queries during validation.
type Set struct {
	Effects     *Registry
	Transitions *Registry
	Animations  *Registry
}

// NewSet returns a Set pre-seeded with the built-in implementations.
func NewSet() *Set {
	s := &Set{
		Effects:     New("effects"),
		Transitions: New("transitions"),
		Animations:  New("animations"),
	}
	registerBuiltins(s)
	return s
}

// NewEmptySet returns a Set with no registered implementations. Useful
// for tests and for hosts that supply their own catalog.
func NewEmptySet() *Set {
	return &Set{
		Effects:     New("effects"),
		Transitions: New("transitions"),
		Animations:  New("animations"),
	}
}

// HasEffect reports whether an effect named name is registered.
func (s *Set) HasEffect(name string) bool { return s.Effects.Has(name) }

// HasTransition reports whether a transition named name is registered.
func (s *Set) HasTransition(name string) bool { return s.Transitions.Has(name) }

// HasAnimation reports whether an animation named name is registered.
func (s *Set) HasAnimation(name string) bool { return s.Animations.Has(name) }
