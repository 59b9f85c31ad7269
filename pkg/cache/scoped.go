package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind a shared server where different callers or
// sessions need separate cache namespaces.
//
// Example usage:
//
//	// Session-specific keys for a query server instance.
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
//
//	// Global keys shared across all callers.
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

// TraversalKey generates a prefixed key for a cached traversal result.
func (k *ScopedKeyer) TraversalKey(sectionHash string, opts TraversalKeyOpts) string {
	return k.prefix + k.inner.TraversalKey(sectionHash, opts)
}

// RenderKey generates a prefixed key for a cached rendered projection.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}
