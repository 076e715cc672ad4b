package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when several deployments or users share one Redis or MongoDB instance
// and their entries must not collide.
//
// Example usage:
//
//	// Per-tenant keys
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

// CatalogKey generates a prefixed key for catalog caching.
func (k *ScopedKeyer) CatalogKey(catalogHash string) string {
	return k.prefix + k.inner.CatalogKey(catalogHash)
}

// ResultKey generates a prefixed key for solve result caching.
func (k *ScopedKeyer) ResultKey(catalogHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(catalogHash, opts)
}

// ImageKey generates a prefixed key for assembled image caching.
func (k *ScopedKeyer) ImageKey(catalogHash string) string {
	return k.prefix + k.inner.ImageKey(catalogHash)
}
