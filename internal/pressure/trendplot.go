package pressure

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PeakTrend plots the peak pressure of each frame in a recording as a
// PNG time series and writes it to w. Frames with no valid reading are
// skipped rather than plotted as zero. Returns an error when the
// sequence has no plottable frame at all.
func PeakTrend(w io.Writer, frames []*Frame, names RegionNames, unitFactor float64, title string) error {
	pts := make(plotter.XYs, 0, len(frames))
	for i, f := range frames {
		peak, ok := FindPeak(f, names, unitFactor)
		if !ok {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: peak.KPa})
	}
	if len(pts) == 0 {
		return fmt.Errorf("no frames with valid readings to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Peak pressure (kPa)"
	p.Y.Min = 0

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Radius = vg.Points(1.5)
	scatter.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	wt, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
