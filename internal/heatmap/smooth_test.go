package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothDeterministic(t *testing.T) {
	f := NewField(40, 50)
	f.Set(20, 25, 500)
	f.Set(5, 10, 120)

	a := Smooth(f, 6)
	b := Smooth(f, 6)
	assert.Equal(t, a.Vals, b.Vals)
}

func TestSmoothZeroFieldStaysZero(t *testing.T) {
	out := Smooth(NewField(30, 30), 5)
	for _, v := range out.Vals {
		assert.Zero(t, v)
	}
}

func TestSmoothMonotonicDecayFromPointSource(t *testing.T) {
	f := NewField(61, 61)
	f.Set(30, 30, 1000)
	out := Smooth(f, 8)

	// Walk outward along several rays; the diffused value must never
	// increase with distance from the source.
	rays := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {2, 1}}
	for _, ray := range rays {
		x, y := 30, 30
		prev := out.At(x, y)
		for {
			x += ray[0]
			y += ray[1]
			if x < 0 || y < 0 || x >= out.W || y >= out.H {
				break
			}
			cur := out.At(x, y)
			if cur > prev {
				t.Fatalf("ray %v: value rose from %v to %v at (%d,%d)", ray, prev, cur, x, y)
			}
			prev = cur
		}
	}
}

func TestSmoothMirrorSymmetry(t *testing.T) {
	f := NewField(50, 20)
	f.Set(12, 7, 300)
	f.Set(40, 15, 80)

	mirror := NewField(50, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 50; x++ {
			mirror.Set(50-1-x, y, f.At(x, y))
		}
	}

	a := Smooth(f, 7)
	b := Smooth(mirror, 7)
	for y := 0; y < 20; y++ {
		for x := 0; x < 50; x++ {
			require.Equal(t, a.At(x, y), b.At(50-1-x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestSmoothNonPositiveSigmaCopies(t *testing.T) {
	f := NewField(10, 10)
	f.Set(3, 3, 9)
	out := Smooth(f, 0)
	assert.Equal(t, f.Vals, out.Vals)
}
