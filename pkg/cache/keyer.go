package cache

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey identifies the scene generated from seed.
	SceneKey(seed uint64) string
	// ArtifactKey identifies one rendered output of that scene.
	ArtifactKey(seed uint64, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render input besides the seed that changes
// the output bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Theme   string  `json:"theme"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Animate bool    `json:"animate"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey implements Keyer.
func (DefaultKeyer) SceneKey(seed uint64) string {
	return hashKey("scene", seed)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(seed uint64, opts ArtifactKeyOpts) string {
	return hashKey("artifact", seed, opts)
}
