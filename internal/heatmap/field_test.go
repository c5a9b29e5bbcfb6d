package heatmap

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosense/plantar.report/internal/pressure"
)

func mustFrame(t *testing.T, side pressure.FootSide, readings map[int]float64) *pressure.Frame {
	t.Helper()
	f, err := pressure.NewFrame(side, time.Unix(1700000000, 0), readings)
	require.NoError(t, err)
	return f
}

func TestBuildFieldPlacesReadings(t *testing.T) {
	layout := pressure.Layout{1: {X: 0.5, Y: 0.5}, 2: {X: 0.1, Y: 0.9}}
	frame := mustFrame(t, pressure.FootRight, map[int]float64{1: 100, 2: 250})

	f, err := BuildField(frame, layout, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, 100.0, f.At(5, 5))
	assert.Equal(t, 250.0, f.At(1, 9))

	var sum float64
	for _, v := range f.Vals {
		sum += v
	}
	assert.Equal(t, 350.0, sum, "no other cell should be written")
}

func TestBuildFieldMirrorsLeftFoot(t *testing.T) {
	layout := pressure.Layout{1: {X: 0.2, Y: 0.4}}
	right := mustFrame(t, pressure.FootRight, map[int]float64{1: 7})
	left := mustFrame(t, pressure.FootLeft, map[int]float64{1: 7})

	fr, err := BuildField(right, layout, 10, 10)
	require.NoError(t, err)
	fl, err := BuildField(left, layout, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, 7.0, fr.At(2, 4))
	assert.Equal(t, 7.0, fl.At(10-1-2, 4))
}

func TestBuildFieldSkipsMissing(t *testing.T) {
	frame := mustFrame(t, pressure.FootRight, map[int]float64{3: math.NaN(), 5: 42})

	f, err := BuildField(frame, pressure.DefaultLayout(), CanvasW, CanvasH)
	require.NoError(t, err)

	seen := 0
	for _, v := range f.Vals {
		if v != 0 {
			seen++
			assert.Equal(t, 42.0, v)
		}
	}
	assert.Equal(t, 1, seen)
}

func TestBuildFieldAllMissingIsZero(t *testing.T) {
	frame := mustFrame(t, pressure.FootRight, nil)

	f, err := BuildField(frame, pressure.DefaultLayout(), CanvasW, CanvasH)
	require.NoError(t, err)
	for _, v := range f.Vals {
		if v != 0 {
			t.Fatalf("expected all-zero field, found %v", v)
		}
	}
}

func TestBuildFieldRejectsBadDimensions(t *testing.T) {
	frame := mustFrame(t, pressure.FootRight, map[int]float64{1: 1})
	_, err := BuildField(frame, pressure.DefaultLayout(), 0, CanvasH)
	assert.Error(t, err)
	_, err = BuildField(frame, pressure.DefaultLayout(), CanvasW, -5)
	assert.Error(t, err)
}

func TestBuildFieldRejectsIncompleteLayout(t *testing.T) {
	frame := mustFrame(t, pressure.FootRight, map[int]float64{9: 12})
	_, err := BuildField(frame, pressure.Layout{1: {X: 0.5, Y: 0.5}}, 10, 10)
	assert.Error(t, err)
}
