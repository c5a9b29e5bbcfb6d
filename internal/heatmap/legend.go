package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Legend raster geometry.
const (
	LegendW       = 500
	LegendH       = 70
	legendMargin  = 30
	legendBarH    = 22
	legendPadTop  = 12
	legendTickLen = 7
)

// LegendSpec describes one value scale: the physical ceiling and the
// tick values rendered along the bar. The final tick always equals
// ReferenceMax exactly.
type LegendSpec struct {
	ReferenceMax float64
	Ticks        []float64
}

// NewLegendSpec builds a spec with n uniformly spaced ticks from 0 up
// to refMax. Non-positive ceilings fall back to a safe default so a
// legend can always be drawn. Intermediate ticks are rounded by
// magnitude (1 decimal below 100, integers above); the final tick is
// refMax itself, never rounded.
func NewLegendSpec(refMax float64, n int) LegendSpec {
	if refMax <= 0 {
		refMax = defaultReferenceMax
	}
	if n < 2 {
		n = 2
	}
	decimals := 1
	if refMax >= 100 {
		decimals = 0
	}
	pow := math.Pow(10, float64(decimals))
	step := refMax / float64(n-1)
	ticks := make([]float64, 0, n)
	for i := 0; i < n-1; i++ {
		ticks = append(ticks, math.Round(float64(i)*step*pow)/pow)
	}
	ticks = append(ticks, refMax)
	return LegendSpec{ReferenceMax: refMax, Ticks: ticks}
}

// FixedLegendSpec builds a spec from a caller-supplied tick list. The
// largest tick becomes the ceiling.
func FixedLegendSpec(ticks []float64) LegendSpec {
	refMax := defaultReferenceMax
	for _, t := range ticks {
		if t > refMax {
			refMax = t
		}
	}
	return LegendSpec{ReferenceMax: refMax, Ticks: ticks}
}

// RenderLegend draws the spec as a horizontal gradient bar with tick
// marks and value labels. The gradient uses the same hue ramp as the
// heatmap colorizer, evaluated at the position fraction, so legend
// colors line up with rendered intensities. Labels sit on translucent
// black patches to stay legible over the gradient.
func RenderLegend(spec LegendSpec) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, LegendW, LegendH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)

	span := LegendW - 2*legendMargin - 1
	for x := legendMargin; x < LegendW-legendMargin; x++ {
		frac := float64(x-legendMargin) / float64(span)
		r, g, b := hueRGB((1 - frac) * 240)
		for y := legendPadTop; y < legendPadTop+legendBarH; y++ {
			o := img.PixOffset(x, y)
			img.Pix[o+0] = r
			img.Pix[o+1] = g
			img.Pix[o+2] = b
			img.Pix[o+3] = 255
		}
	}

	face := basicfont.Face7x13
	baseline := legendPadTop + legendBarH
	for _, tick := range spec.Ticks {
		frac := 0.0
		if spec.ReferenceMax > 0 {
			frac = clamp01(tick / spec.ReferenceMax)
		}
		x := legendMargin + int(frac*float64(span))

		tickRect := image.Rect(x, baseline, x+2, baseline+legendTickLen)
		draw.Draw(img, tickRect, image.NewUniform(color.NRGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

		label := fmt.Sprintf("%g kPa", tick)
		tw := font.MeasureString(face, label).Ceil()
		th := face.Metrics().Height.Ceil()

		patch := image.Rect(x-tw/2-4, LegendH-th-4, x+tw/2+4, LegendH-4)
		draw.Draw(img, patch, image.NewUniform(color.NRGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{255, 255, 255, 255}),
			Face: face,
			Dot:  fixed.P(x-tw/2, LegendH-7),
		}
		d.DrawString(label)
	}
	return img
}
