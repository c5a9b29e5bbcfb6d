// Command gen-masks writes placeholder foot-silhouette masks so the
// service can run before the production artwork is available. The
// silhouette is a heel circle merged with a forefoot ellipse: opaque
// background outside the outline, transparent inside so the heatmap
// shows through.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/pressure"
)

func main() {
	outDir := flag.String("o", "assets", "output directory")
	width := flag.Int("width", heatmap.CanvasW, "mask width in pixels")
	height := flag.Int("height", heatmap.CanvasH, "mask height in pixels")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	for _, side := range []pressure.FootSide{pressure.FootLeft, pressure.FootRight} {
		path := filepath.Join(*outDir, "mask_"+string(side)+".png")
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("failed to create %s: %v", path, err)
		}
		if err := png.Encode(f, mask(side, *width, *height)); err != nil {
			f.Close()
			log.Fatalf("failed to encode %s: %v", path, err)
		}
		f.Close()
		log.Printf("✓ Created: %s", path)
	}
}

var (
	background = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	outline    = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

func mask(side pressure.FootSide, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x := (float64(px) + 0.5) / float64(w)
			if side == pressure.FootLeft {
				x = 1 - x
			}
			y := (float64(py) + 0.5) / float64(h)

			d := footDistance(x, y)
			switch {
			case d > 1.06:
				img.SetNRGBA(px, py, background)
			case d >= 0.97:
				img.SetNRGBA(px, py, outline)
			}
			// inside stays fully transparent
		}
	}
	return img
}

// footDistance returns a normalized distance to the silhouette edge:
// <1 inside, 1 on the outline, >1 outside. The shape is the union of a
// forefoot ellipse and a heel circle, defined for the right foot.
func footDistance(x, y float64) float64 {
	fore := ellipseDistance(x, y, 0.46, 0.30, 0.30, 0.26)
	heel := ellipseDistance(x, y, 0.43, 0.76, 0.20, 0.20)
	return math.Min(fore, heel)
}

func ellipseDistance(x, y, cx, cy, rx, ry float64) float64 {
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return math.Sqrt(dx*dx + dy*dy)
}
