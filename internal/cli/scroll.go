package cli

import (
	"math"
	"sync/atomic"

	"github.com/charmbracelet/harmonica"
)

// Smooth-scroll spring. Critically damped, so a page jump eases in without
// overshooting the way a browser's smooth scrolling does.
const (
	scrollFrequency = 6.0
	scrollDamping   = 1.0
)

// scrollPos is a float64 shared between the model and the frame loop.
type scrollPos struct {
	bits atomic.Uint64
}

func (s *scrollPos) load() float64   { return math.Float64frombits(s.bits.Load()) }
func (s *scrollPos) store(y float64) { s.bits.Store(math.Float64bits(y)) }

// smoothScroll is the preview's simulated page. Key presses move the target;
// each frame the physics loop reads ScrollY, which eases the page position
// toward the target. The engine therefore sees per-frame deltas shaped like
// real wheel scrolling rather than one 400px jump.
type smoothScroll struct {
	target scrollPos
	shown  scrollPos

	// Owned by the frame loop goroutine.
	spring   harmonica.Spring
	pos, vel float64
}

func newSmoothScroll(fps int) *smoothScroll {
	return &smoothScroll{spring: harmonica.NewSpring(harmonica.FPS(fps), scrollFrequency, scrollDamping)}
}

// ScrollY advances the page one frame and returns its position. It
// implements physics.ScrollReader and must only be called by the loop.
func (s *smoothScroll) ScrollY() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target.load())
	s.shown.store(s.pos)
	return s.pos
}

// scrollBy moves the target. The page cannot scroll above its top.
func (s *smoothScroll) scrollBy(dy float64) {
	s.target.store(max(0, s.target.load()+dy))
}

// Target is where the page is heading.
func (s *smoothScroll) Target() float64 { return s.target.load() }

// Position is where the page was on the last frame.
func (s *smoothScroll) Position() float64 { return s.shown.load() }

// jump places the page at y with no easing. Call before the loop starts.
func (s *smoothScroll) jump(y float64) {
	s.target.store(y)
	s.shown.store(y)
	s.pos, s.vel = y, 0
}
