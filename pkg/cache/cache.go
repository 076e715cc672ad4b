// Package cache provides pluggable result caching for solve runs.
//
// Backends share one small interface so the pipeline and server can swap
// them through configuration:
//   - file: directory-backed cache for CLI usage
//   - redis: Redis-backed cache for multi-instance deployments
//   - mongo: MongoDB-backed cache with server-side TTL expiry
//   - null: disabled caching
//
// Keys are derived from the solve inputs through a Keyer, so identical
// tile sets and patterns hit the same entry regardless of which surface
// (CLI or API) issued the run.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores the value without
	// expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from solve inputs.
type Keyer interface {
	// CatalogKey identifies a parsed tile catalog by the hash of its
	// source text.
	CatalogKey(catalogHash string) string

	// ResultKey identifies a full solve result: catalog plus the pattern
	// searched for.
	ResultKey(catalogHash string, opts ResultKeyOpts) string

	// ImageKey identifies an assembled image independent of any pattern.
	ImageKey(catalogHash string) string
}

// ResultKeyOpts captures the options that change a solve result.
type ResultKeyOpts struct {
	Pattern    string // textual pattern rows, empty for the built-in mask
	SkipSearch bool   // assembly-only results live under their own keys
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CatalogKey generates a key for a parsed catalog.
func (k *DefaultKeyer) CatalogKey(catalogHash string) string {
	return "catalog:" + catalogHash
}

// ResultKey generates a key for a solve result, folding the options into
// the hash so different patterns never collide.
func (k *DefaultKeyer) ResultKey(catalogHash string, opts ResultKeyOpts) string {
	return hashKey("result", catalogHash, opts)
}

// ImageKey generates a key for an assembled image.
func (k *DefaultKeyer) ImageKey(catalogHash string) string {
	return "image:" + catalogHash
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
