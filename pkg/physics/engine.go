package physics

// Offsets are the layer translations produced by one frame. Both layers
// translate along the Y axis.
type Offsets struct {
	Vertical   float64 `json:"vertical"`
	Horizontal float64 `json:"horizontal"`
}

// Engine runs both parallax axes for a single view.
type Engine struct {
	Vertical         State
	Horizontal       State
	VerticalTuning   Tuning
	HorizontalTuning Tuning
}

// NewEngine creates an engine at rest with the default presets, treating
// scroll as the current scroll position.
func NewEngine(scroll float64) *Engine {
	e := &Engine{VerticalTuning: Snappy, HorizontalTuning: Floaty}
	e.Reset(scroll)
	return e
}

// Reset puts both axes at rest and sets their scroll reference.
func (e *Engine) Reset(scroll float64) {
	e.Vertical = State{LastScroll: scroll}
	e.Horizontal = State{LastScroll: scroll}
}

// Tick advances both axes by one frame using the current scroll position.
func (e *Engine) Tick(scroll float64) Offsets {
	e.Vertical = e.Vertical.Observe(scroll, e.VerticalTuning)
	e.Horizontal = e.Horizontal.Observe(scroll, e.HorizontalTuning)
	return e.Offsets()
}

// Offsets returns the current layer translations.
func (e *Engine) Offsets() Offsets {
	return Offsets{Vertical: e.Vertical.Position, Horizontal: e.Horizontal.Position}
}

// Simulate feeds one scroll delta per frame and returns the offsets after
// each frame.
func (e *Engine) Simulate(deltas []float64) []Offsets {
	out := make([]Offsets, len(deltas))
	scroll := e.Vertical.LastScroll
	for i, d := range deltas {
		scroll += d
		out[i] = e.Tick(scroll)
	}
	return out
}

// Trace runs a single axis from s through one frame per delta and returns
// the state after each frame.
func Trace(s State, t Tuning, deltas []float64) []State {
	out := make([]State, len(deltas))
	for i, d := range deltas {
		s = Step(d, s, t)
		out[i] = s
	}
	return out
}

// Deltas converts absolute scroll positions into per-frame deltas, taking
// from as the position before the first frame.
func Deltas(from float64, positions []float64) []float64 {
	out := make([]float64, len(positions))
	for i, p := range positions {
		out[i] = p - from
		from = p
	}
	return out
}
