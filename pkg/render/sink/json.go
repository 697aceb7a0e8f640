package sink

import (
	"encoding/json"

	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme   styles.Theme
	width   int
	height  int
	offsets *physics.Offsets
}

// WithJSONTheme records the theme in the output so a consumer can color the
// descriptors the same way.
func WithJSONTheme(t styles.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = t } }

// WithJSONSize records the viewport size the descriptors were rendered for.
func WithJSONSize(w, h int) JSONOption {
	return func(r *jsonRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithJSONOffsets records a parallax offset snapshot.
func WithJSONOffsets(o physics.Offsets) JSONOption {
	return func(r *jsonRenderer) { r.offsets = &o }
}

type jsonOutput struct {
	Seed       uint64           `json:"seed"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	PathLength float64          `json:"path_length"`
	Theme      styles.Theme     `json:"theme"`
	Offsets    *physics.Offsets `json:"offsets,omitempty"`
	Vertical   []pattern.Line   `json:"vertical"`
	Horizontal []pattern.Line   `json:"horizontal"`
}

// RenderJSON exports the scene as indented JSON.
func RenderJSON(s pattern.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{theme: styles.Light, width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Seed:       s.Seed,
		Width:      r.width,
		Height:     r.height,
		PathLength: pattern.PathLength,
		Theme:      r.theme,
		Offsets:    r.offsets,
		Vertical:   s.Vertical,
		Horizontal: s.Horizontal,
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON decodes a scene previously exported with [RenderJSON].
func ParseJSON(data []byte) (pattern.Scene, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return pattern.Scene{}, err
	}
	return pattern.Scene{Seed: out.Seed, Vertical: out.Vertical, Horizontal: out.Horizontal}, nil
}
