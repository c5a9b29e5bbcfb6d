package heatmap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon guards the relative-mode denominator so an all-equal field
// normalizes to zero instead of dividing by zero.
const epsilon = 1e-6

// defaultReferenceMax substitutes for non-positive reference ceilings.
const defaultReferenceMax = 1.0

// Normalize maps a smoothed field to intensities in [0,1] under the
// configured policy.
//
// ModeRelative stretches the frame's own min..max range, then applies
// the gamma contrast curve. ModeAbsolute converts to physical units,
// clamps against the fixed reference ceiling and applies the same
// curve, so equal intensities mean equal pressures across frames.
func Normalize(f *Field, cfg Config) *Field {
	out := NewField(f.W, f.H)
	switch cfg.Mode {
	case ModeAbsolute:
		refMax := cfg.ReferenceMax
		if refMax <= 0 {
			refMax = defaultReferenceMax
		}
		for i, v := range f.Vals {
			out.Vals[i] = math.Pow(clamp01(v*cfg.UnitFactor/refMax), cfg.Gamma)
		}
	default:
		lo := floats.Min(f.Vals)
		hi := floats.Max(f.Vals)
		span := hi - lo + epsilon
		for i, v := range f.Vals {
			out.Vals[i] = math.Pow((v-lo)/span, cfg.Gamma)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
