package cli

import (
	"math"
	"testing"

	"github.com/matzehuels/backdrop/pkg/physics"
)

var _ physics.ScrollReader = (*smoothScroll)(nil)

func TestSmoothScrollEases(t *testing.T) {
	s := newSmoothScroll(60)
	s.scrollBy(pageStep)

	prev := 0.0
	for frame := range 120 {
		y := s.ScrollY()
		if y < prev-1e-9 {
			t.Fatalf("frame %d: position went back from %v to %v", frame, prev, y)
		}
		if y > pageStep+1e-6 {
			t.Fatalf("frame %d: overshot to %v", frame, y)
		}
		if frame == 0 && y >= pageStep/2 {
			t.Errorf("first frame jumped to %v", y)
		}
		prev = y
	}
	if math.Abs(prev-pageStep) > 0.5 {
		t.Errorf("after 2s position = %v, want ~%v", prev, pageStep)
	}
	if s.Position() != prev {
		t.Errorf("Position() = %v, want last frame %v", s.Position(), prev)
	}
}

func TestSmoothScrollJump(t *testing.T) {
	s := newSmoothScroll(60)
	s.jump(350)
	if got := s.ScrollY(); got != 350 {
		t.Errorf("ScrollY after jump = %v, want 350", got)
	}
	s.scrollBy(-1000)
	if s.Target() != 0 {
		t.Errorf("Target = %v, want clamp at 0", s.Target())
	}
}

// The engine sees the eased deltas, so a page jump produces a smaller first
// impulse than the raw jump would.
func TestSmoothScrollDrivesEngine(t *testing.T) {
	s := newSmoothScroll(60)
	e := physics.NewEngine(s.ScrollY())
	s.scrollBy(pageStep)

	eased := e.Tick(s.ScrollY())
	raw := physics.NewEngine(0).Tick(pageStep)
	if !(eased.Vertical > 0 && eased.Vertical < raw.Vertical) {
		t.Errorf("eased offset %v, raw %v", eased.Vertical, raw.Vertical)
	}
}
