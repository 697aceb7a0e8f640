package physics

import (
	"math"
	"time"
)

// CSS ease-in-out control points.
const (
	easeX1, easeY1 = 0.42, 0.0
	easeX2, easeY2 = 0.58, 1.0
)

// Drift returns the displacement of an element oscillating out to offset and
// back over duration seconds, after elapsed time. Each half of the cycle is
// eased in and out. Drift is stateless: the phase depends on elapsed only.
func Drift(offset, duration float64, elapsed time.Duration) float64 {
	if duration <= 0 || offset == 0 {
		return 0
	}
	phase := math.Mod(elapsed.Seconds(), duration) / duration
	if phase < 0 {
		phase++
	}
	if phase < 0.5 {
		return offset * easeInOut(phase*2)
	}
	return offset * (1 - easeInOut((phase-0.5)*2))
}

// easeInOut evaluates the cubic-bezier(0.42, 0, 0.58, 1) timing function.
func easeInOut(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return bezier(solveT(x, easeX1, easeX2), easeY1, easeY2)
}

// bezier evaluates one coordinate of a cubic Bézier whose endpoints are 0 and 1.
func bezier(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func bezierSlope(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

// solveT finds the curve parameter whose x coordinate is x.
func solveT(x, p1, p2 float64) float64 {
	const eps = 1e-7

	t := x
	for range 8 {
		dx := bezier(t, p1, p2) - x
		if math.Abs(dx) < eps {
			return t
		}
		slope := bezierSlope(t, p1, p2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= dx / slope
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := bezier(t, p1, p2)
		if math.Abs(v-x) < eps {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
		if hi-lo < eps {
			break
		}
	}
	return t
}
