package heatmap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// kernelTruncate bounds the gaussian kernel at this many standard
// deviations on each side.
const kernelTruncate = 4.0

// gaussKernel builds a normalized 1-D gaussian kernel for the given
// sigma. The kernel has 2*radius+1 taps with radius = truncate*sigma.
func gaussKernel(sigma float64) []float64 {
	radius := int(kernelTruncate*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	k := make([]float64, 2*radius+1)
	inv := 1.0 / (2 * sigma * sigma)
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d * inv)
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

// Smooth applies isotropic gaussian diffusion to the field, returning a
// new field of the same dimensions. The blur is separable: one
// horizontal pass, one vertical pass, both clamping indices at the
// canvas edges so nothing wraps around. Output is deterministic for a
// given input and sigma.
func Smooth(f *Field, sigma float64) *Field {
	if sigma <= 0 {
		out := NewField(f.W, f.H)
		copy(out.Vals, f.Vals)
		return out
	}
	k := gaussKernel(sigma)
	radius := len(k) / 2

	// Taps are accumulated as symmetric pairs around the center so the
	// result is invariant under horizontal mirroring of the input, not
	// just equal within rounding.
	tmp := NewField(f.W, f.H)
	for y := 0; y < f.H; y++ {
		row := f.Vals[y*f.W : (y+1)*f.W]
		for x := 0; x < f.W; x++ {
			sum := k[radius] * row[x]
			for j := 1; j <= radius; j++ {
				l := clampInt(x-j, 0, f.W-1)
				r := clampInt(x+j, 0, f.W-1)
				sum += k[radius-j] * (row[l] + row[r])
			}
			tmp.Set(x, y, sum)
		}
	}

	out := NewField(f.W, f.H)
	for x := 0; x < f.W; x++ {
		for y := 0; y < f.H; y++ {
			sum := k[radius] * tmp.At(x, y)
			for j := 1; j <= radius; j++ {
				u := clampInt(y-j, 0, f.H-1)
				d := clampInt(y+j, 0, f.H-1)
				sum += k[radius-j] * (tmp.At(x, u) + tmp.At(x, d))
			}
			out.Set(x, y, sum)
		}
	}
	return out
}
