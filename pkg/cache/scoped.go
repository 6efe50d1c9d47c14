package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP server uses this so different API consumers get separate
// cache namespaces.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ValidationKey generates a prefixed key for a validation verdict.
func (k *ScopedKeyer) ValidationKey(specHash string) string {
	return k.prefix + k.inner.ValidationKey(specHash)
}

// DiagramKey generates a prefixed key for a diagram rendering.
func (k *ScopedKeyer) DiagramKey(specHash, format string) string {
	return k.prefix + k.inner.DiagramKey(specHash, format)
}
