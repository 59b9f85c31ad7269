// Package cache provides pluggable storage for expensive, re-derivable TSG
// results: traversal enumerations (which can blow up combinatorially on a
// cyclic or heavily-branching section) and rendered projections (DOT/SVG).
// Callers select a backend — an on-disk file cache for local CLI use, Redis
// for a shared server deployment, or a null cache that disables caching
// outright — behind the same Cache interface.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs under string keys with optional
// expiration. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a cache miss;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys for the two kinds of derived result this package
// caches: a traversal's enumerated paths, and a rendered projection of a
// parsed document.
type Keyer interface {
	// TraversalKey identifies a traversal result by a caller-supplied hash
	// identifying the section traversed plus the options that shape
	// enumeration.
	TraversalKey(sectionHash string, opts TraversalKeyOpts) string

	// RenderKey identifies a rendered projection by the content hash of
	// the document rendered plus the target format.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// TraversalKeyOpts captures the traversal parameters that affect which
// paths are enumerated, so two traversals over the same section with
// different options never collide in cache.
type TraversalKeyOpts struct {
	RevisitCap int
	IDScheme   string
}

// RenderKeyOpts captures the parameters that affect a rendered projection.
type RenderKeyOpts struct {
	Format string
}

// DefaultKeyer builds keys by hashing their components with Hash.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a Keyer with no namespace prefix.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TraversalKey generates a key for a cached traversal result.
func (k *DefaultKeyer) TraversalKey(sectionHash string, opts TraversalKeyOpts) string {
	return hashKey("traversal", sectionHash, opts.RevisitCap, opts.IDScheme)
}

// RenderKey generates a key for a cached rendered projection.
func (k *DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts.Format)
}
