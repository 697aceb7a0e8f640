package pattern

import (
	"fmt"
	"time"

	"github.com/matzehuels/backdrop/pkg/physics"
)

// Element counts for a scene.
const (
	VerticalCount   = 12
	HorizontalCount = 8

	// HorizontalIDBase offsets horizontal IDs so they never collide with
	// vertical ones.
	HorizontalIDBase = 100
)

// Kind is the drawing style of a vertical element.
type Kind int

const (
	Straight Kind = iota
	Curved
	Measured
)

var kindNames = [...]string{
	Straight: "line",
	Curved:   "curve",
	Measured: "measure",
}

// String returns the name the rendering layer uses for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", b)
}

// Line describes one decorative element. It is never mutated after
// generation.
type Line struct {
	ID         int         `json:"id"`
	Kind       Kind        `json:"kind"`
	Horizontal bool        `json:"horizontal,omitempty"`
	Position   float64     `json:"position"` // percent across the cross-axis (Y for horizontal lines)
	Angle      float64     `json:"angle"`    // degrees
	Width      float64     `json:"stroke_width"`
	Opacity    float64     `json:"opacity"`
	Dash       DashPattern `json:"dash"`

	DriftDuration float64 `json:"drift_duration"` // seconds
	DriftOffset   float64 `json:"drift_offset"`   // pixels

	ControlOffset *float64  `json:"control_offset,omitempty"` // Curved only
	Ticks         []float64 `json:"ticks,omitempty"`          // Measured only
}

// Skew is the horizontal run of a vertical line, in percent.
func (l Line) Skew() float64 { return l.Angle * 1.5 }

// DriftAt returns the line's drift displacement after elapsed time.
func (l Line) DriftAt(elapsed time.Duration) float64 {
	return physics.Drift(l.DriftOffset, l.DriftDuration, elapsed)
}

// Generator draws scenes from a Source.
type Generator struct {
	src Source
}

// NewGenerator creates a generator reading from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// from draws base + r*span.
func (g *Generator) from(base, span float64) float64 {
	return base + g.src.Float64()*span
}

// centered draws (r-0.5)*span, a value in [-span/2, span/2).
func (g *Generator) centered(span float64) float64 {
	return (g.src.Float64() - 0.5) * span
}

// Vertical generates the vertical element set.
func (g *Generator) Vertical() []Line {
	lines := make([]Line, 0, VerticalCount)
	for i := range VerticalCount {
		lines = append(lines, g.vertical(i))
	}
	return lines
}

func (g *Generator) vertical(id int) Line {
	var kind Kind
	switch r := g.src.Float64(); {
	case r > 0.6:
		kind = Curved
	case r > 0.3:
		kind = Measured
	default:
		kind = Straight
	}

	l := Line{
		ID:       id,
		Kind:     kind,
		Position: g.from(0, 100),
		Angle:    g.centered(5),
		Width:    g.from(0.5, 1.5),
		Opacity:  g.from(0.15, 0.25),
	}
	l.Dash = GenerateDash(g.src)
	l.DriftDuration = g.from(20, 30)
	l.DriftOffset = g.centered(60)

	// The control offset is drawn for every kind to keep the draw order
	// stable, but only curves keep it.
	control := g.centered(80)
	switch kind {
	case Curved:
		l.ControlOffset = &control
	case Measured:
		l.Ticks = []float64{g.from(10, 20), g.from(40, 20), g.from(70, 20)}
	}
	return l
}

// Horizontal generates the horizontal element set. All horizontal lines are
// straight.
func (g *Generator) Horizontal() []Line {
	lines := make([]Line, 0, HorizontalCount)
	for i := range HorizontalCount {
		l := Line{
			ID:         HorizontalIDBase + i,
			Kind:       Straight,
			Horizontal: true,
			Position:   g.from(0, 100),
			Angle:      g.centered(2),
			Width:      g.from(0.5, 1.0),
			Opacity:    g.from(0.10, 0.20),
		}
		l.Dash = GenerateDash(g.src)
		l.DriftDuration = g.from(30, 40)
		l.DriftOffset = g.centered(40)
		lines = append(lines, l)
	}
	return lines
}

// Scene pairs both element sets with the seed that produced them.
type Scene struct {
	Seed       uint64 `json:"seed"`
	Vertical   []Line `json:"vertical"`
	Horizontal []Line `json:"horizontal"`
}

// Scene generates a full scene, vertical set first. The seed is recorded
// as-is; it is the caller's job to have built the generator from it.
func (g *Generator) Scene(seed uint64) Scene {
	return Scene{
		Seed:       seed,
		Vertical:   g.Vertical(),
		Horizontal: g.Horizontal(),
	}
}

// NewScene generates the scene for seed.
func NewScene(seed uint64) Scene {
	return NewGenerator(NewSource(seed)).Scene(seed)
}

// Lines returns every line in the scene, vertical first.
func (s Scene) Lines() []Line {
	out := make([]Line, 0, len(s.Vertical)+len(s.Horizontal))
	out = append(out, s.Vertical...)
	return append(out, s.Horizontal...)
}
