package heatmap

import (
	"fmt"
	"math"

	"github.com/neurosense/plantar.report/internal/pressure"
)

// Field is a dense row-major W×H grid of scalars.
type Field struct {
	W, H int
	Vals []float64
}

// NewField allocates a zeroed field.
func NewField(w, h int) *Field {
	return &Field{W: w, H: h, Vals: make([]float64, w*h)}
}

// At returns the value at (x, y). No bounds checks; callers iterate
// within W×H.
func (f *Field) At(x, y int) float64 { return f.Vals[y*f.W+x] }

// Set writes the value at (x, y).
func (f *Field) Set(x, y int, v float64) { f.Vals[y*f.W+x] = v }

// BuildField places each non-missing sensor reading of the frame at the
// pixel nearest its layout position. Cells with no sensor stay zero; an
// all-missing frame yields an all-zero field. Dimension or layout
// problems are rejected before any cell is written, so a partial field
// is never returned.
//
// Left-foot frames mirror at the pixel level (x -> w-1-x) rather than
// in normalized coordinates, so a left and a right frame with equal
// readings rasterize to exact horizontal mirrors.
func BuildField(frame *pressure.Frame, layout pressure.Layout, w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid field dimensions %dx%d", w, h)
	}
	field := NewField(w, h)
	for id := 1; id <= pressure.SensorCount; id++ {
		v := frame.Reading(id)
		if math.IsNaN(v) {
			continue
		}
		pos, ok := layout[id]
		if !ok {
			return nil, fmt.Errorf("layout has no position for sensor %d", id)
		}
		x := clampInt(int(pos.X*float64(w)), 0, w-1)
		y := clampInt(int(pos.Y*float64(h)), 0, h-1)
		if frame.Side() == pressure.FootLeft {
			x = w - 1 - x
		}
		field.Set(x, y, v)
	}
	return field, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
