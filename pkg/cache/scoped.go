package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server scopes keys by release so that entries written by an older
// renderer are never served.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "backdrop:v1.2.0:")
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

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(seed uint64) string {
	return k.prefix + k.inner.SceneKey(seed)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(seed uint64, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(seed, opts)
}
