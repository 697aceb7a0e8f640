package physics

import (
	"fmt"
	"math"
)

// Tuning holds the spring-damper constants for one axis.
type Tuning struct {
	Tension     float64 `json:"tension" toml:"tension"`
	Friction    float64 `json:"friction" toml:"friction"`
	Sensitivity float64 `json:"sensitivity" toml:"sensitivity"`
	VelocityCap float64 `json:"velocity_cap" toml:"velocity_cap"`
}

// Presets.
var (
	// Snappy settles quickly and drives the vertical layer.
	Snappy = Tuning{Tension: 0.20, Friction: 0.88, Sensitivity: 0.05, VelocityCap: 20}

	// Floaty lags and overshoots gently and drives the horizontal layer.
	Floaty = Tuning{Tension: 0.05, Friction: 0.94, Sensitivity: 0.02, VelocityCap: 15}
)

// Preset looks up a named tuning ("snappy" or "floaty").
func Preset(name string) (Tuning, bool) {
	switch name {
	case "snappy", "vertical":
		return Snappy, true
	case "floaty", "horizontal":
		return Floaty, true
	}
	return Tuning{}, false
}

// Validate reports whether t can drive a bounded simulation.
func (t Tuning) Validate() error {
	for name, v := range map[string]float64{
		"tension":      t.Tension,
		"friction":     t.Friction,
		"sensitivity":  t.Sensitivity,
		"velocity_cap": t.VelocityCap,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	if t.VelocityCap <= 0 {
		return fmt.Errorf("velocity_cap must be positive, got %v", t.VelocityCap)
	}
	if t.Friction <= 0 || t.Friction > 1 {
		return fmt.Errorf("friction must be in (0, 1], got %v", t.Friction)
	}
	if t.Tension < 0 {
		return fmt.Errorf("tension must not be negative, got %v", t.Tension)
	}
	return nil
}
