package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegendTicksUniform(t *testing.T) {
	spec := NewLegendSpec(280, 6)
	assert.Equal(t, []float64{0, 56, 112, 168, 224, 280}, spec.Ticks)
	assert.Equal(t, 280.0, spec.ReferenceMax)
}

func TestLegendFinalTickNeverRounded(t *testing.T) {
	// Intermediate ticks round to the display precision; the last tick
	// is the true ceiling, untouched.
	spec := NewLegendSpec(56.789, 6)
	assert.Equal(t, 56.789, spec.Ticks[len(spec.Ticks)-1])
	assert.Equal(t, 0.0, spec.Ticks[0])
	assert.Equal(t, 11.4, spec.Ticks[1]) // 56.789/5 = 11.3578 -> one decimal
}

func TestLegendTickPrecisionByMagnitude(t *testing.T) {
	low := NewLegendSpec(9.9, 6) // < 100: one decimal
	assert.Equal(t, 2.0, low.Ticks[1])
	assert.Equal(t, 4.0, low.Ticks[2])

	high := NewLegendSpec(1234, 6) // >= 100: integers
	assert.Equal(t, 247.0, high.Ticks[1])
}

func TestLegendSpecBadCeiling(t *testing.T) {
	spec := NewLegendSpec(-3, 6)
	assert.Equal(t, 1.0, spec.ReferenceMax)
	assert.Equal(t, 1.0, spec.Ticks[len(spec.Ticks)-1])
}

func TestFixedLegendSpec(t *testing.T) {
	spec := FixedLegendSpec([]float64{0, 50, 150})
	assert.Equal(t, 150.0, spec.ReferenceMax)
	assert.Equal(t, []float64{0, 50, 150}, spec.Ticks)
}

func TestRenderLegendGradient(t *testing.T) {
	img := RenderLegend(NewLegendSpec(280, 6))
	b := img.Bounds()
	assert.Equal(t, LegendW, b.Dx())
	assert.Equal(t, LegendH, b.Dy())

	barY := legendPadTop + legendBarH/2

	// Left end of the bar is the zero hue (blue), right end red.
	o := img.PixOffset(legendMargin, barY)
	assert.Equal(t, []uint8{0, 0, 255}, []uint8(img.Pix[o:o+3]))
	o = img.PixOffset(LegendW-legendMargin-1, barY)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8(img.Pix[o:o+3]))

	// Outside the margins the background stays black.
	o = img.PixOffset(0, barY)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8(img.Pix[o:o+3]))
}

func TestRenderLegendDeterministic(t *testing.T) {
	spec := NewLegendSpec(123.4, 6)
	a := RenderLegend(spec)
	b := RenderLegend(spec)
	assert.Equal(t, a.Pix, b.Pix)
}
