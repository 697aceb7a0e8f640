package physics

// MaxScrollDelta bounds the scroll movement a single frame may inject.
const MaxScrollDelta = 100.0

// DefaultFrameRate is the frame rate the presets assume, in frames per second.
const DefaultFrameRate = 60

// MaxFrameRate bounds the frame rate a [Loop] accepts.
const MaxFrameRate = 1000

// State is the mutable physics state of one axis.
type State struct {
	Position   float64 `json:"position"`
	Velocity   float64 `json:"velocity"`
	LastScroll float64 `json:"last_scroll"`
}

// Step advances s by one frame given the scroll delta since the last frame.
// The delta is clamped to ±MaxScrollDelta and the resulting velocity to
// ±t.VelocityCap. LastScroll is carried over unchanged.
func Step(delta float64, s State, t Tuning) State {
	d := clamp(delta, -MaxScrollDelta, MaxScrollDelta)

	v := s.Velocity + d*t.Sensitivity
	v += -s.Position * t.Tension
	v *= t.Friction
	v = clamp(v, -t.VelocityCap, t.VelocityCap)

	return State{
		Position:   s.Position + v,
		Velocity:   v,
		LastScroll: s.LastScroll,
	}
}

// Observe steps s using the movement from s.LastScroll to scroll and
// records scroll as the new reference.
func (s State) Observe(scroll float64, t Tuning) State {
	next := Step(scroll-s.LastScroll, s, t)
	next.LastScroll = scroll
	return next
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
