package heatmap

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Composite lays the foot-silhouette mask over the colorized heatmap
// using the "over" alpha operator. The order matters: the mask frames
// the heatmap, so it is the top layer. Mask and heatmap bounds must
// agree; a mismatch is rejected before any pixel is touched.
//
// The blend runs in straight (non-premultiplied) space so that fully
// transparent mask pixels leave the heatmap bytes untouched.
func Composite(heat *image.NRGBA, mask image.Image) (*image.NRGBA, error) {
	if mask.Bounds().Dx() != heat.Bounds().Dx() || mask.Bounds().Dy() != heat.Bounds().Dy() {
		return nil, fmt.Errorf("mask dimensions %dx%d do not match heatmap %dx%d",
			mask.Bounds().Dx(), mask.Bounds().Dy(), heat.Bounds().Dx(), heat.Bounds().Dy())
	}
	b := heat.Bounds()
	mb := mask.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, heat.Pix)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			m := color.NRGBAModel.Convert(mask.At(mb.Min.X+x, mb.Min.Y+y)).(color.NRGBA)
			if m.A == 0 {
				continue
			}
			o := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			if m.A == 255 {
				out.Pix[o+0] = m.R
				out.Pix[o+1] = m.G
				out.Pix[o+2] = m.B
				out.Pix[o+3] = 255
				continue
			}
			ma := float64(m.A) / 255
			ha := float64(out.Pix[o+3]) / 255 * (1 - ma)
			oa := ma + ha
			blend := func(mc, hc uint8) uint8 {
				return uint8((float64(mc)*ma + float64(hc)*ha) / oa)
			}
			out.Pix[o+0] = blend(m.R, out.Pix[o+0])
			out.Pix[o+1] = blend(m.G, out.Pix[o+1])
			out.Pix[o+2] = blend(m.B, out.Pix[o+2])
			out.Pix[o+3] = uint8(oa * 255)
		}
	}
	return out, nil
}

// FitTo resamples the raster into the given bounding box with a
// bilinear filter, preserving aspect ratio.
func FitTo(img image.Image, maxW, maxH int) *image.NRGBA {
	b := img.Bounds()
	scale := float64(maxW) / float64(b.Dx())
	if s := float64(maxH) / float64(b.Dy()); s < scale {
		scale = s
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
