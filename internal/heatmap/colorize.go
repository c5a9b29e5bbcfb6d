package heatmap

import (
	"image"
	"math"
)

// alphaCutoff is the intensity fraction below which ModeAbsolute
// renders fully transparent.
const alphaCutoff = 0.02

// Colorize maps an intensity field to an RGBA raster. A second
// contrast curve (Delta) is applied on top of the normalizer's Gamma,
// then intensity sweeps hue from 240° (blue, zero) down to 0° (red,
// maximum) at full saturation and value.
//
// The alpha channel follows the active mode: ModeRelative keeps a
// visible haze everywhere (alpha 180..255), ModeAbsolute fades to true
// transparency below the cutoff so silent regions show no color at all.
func Colorize(intensity *Field, cfg Config) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, intensity.W, intensity.H))
	for y := 0; y < intensity.H; y++ {
		for x := 0; x < intensity.W; x++ {
			frac := math.Pow(intensity.At(x, y), cfg.Delta)
			r, g, b := hueRGB((1 - frac) * 240)

			var a uint8
			if cfg.Mode == ModeAbsolute {
				if frac >= alphaCutoff {
					a = uint8(255 * clamp01(math.Pow(frac, 1.2)))
				}
			} else {
				a = uint8(180 + 75*frac)
			}

			o := img.PixOffset(x, y)
			img.Pix[o+0] = r
			img.Pix[o+1] = g
			img.Pix[o+2] = b
			img.Pix[o+3] = a
		}
	}
	return img
}

// hueRGB converts a hue in degrees (saturation and value fixed at 1)
// to 8-bit RGB via the standard six-sector hexagonal formula.
func hueRGB(hue float64) (r, g, b uint8) {
	h := hue / 360.0
	sector := int(h * 6.0)
	f := h*6.0 - float64(sector)
	sector %= 6
	if sector < 0 {
		sector += 6
	}

	q := 1 - f
	t := f
	var rf, gf, bf float64
	switch sector {
	case 0:
		rf, gf, bf = 1, t, 0
	case 1:
		rf, gf, bf = q, 1, 0
	case 2:
		rf, gf, bf = 0, 1, t
	case 3:
		rf, gf, bf = 0, q, 1
	case 4:
		rf, gf, bf = t, 0, 1
	default:
		rf, gf, bf = 1, 0, q
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}
