package heatmap

import (
	"fmt"
	"image"

	"github.com/neurosense/plantar.report/internal/pressure"
)

// Renderer runs the full pipeline for one configuration: field
// placement, gaussian diffusion, normalization, colorization and
// silhouette compositing. A Renderer holds only read-only state
// (config, layout, masks), so one instance may render frames from
// multiple goroutines concurrently.
type Renderer struct {
	cfg    Config
	layout pressure.Layout
	masks  map[pressure.FootSide]image.Image
}

// NewRenderer builds a renderer. Masks are optional per side; Render
// fails for a side without one, Heatmap never needs them.
func NewRenderer(cfg Config, layout pressure.Layout, masks map[pressure.FootSide]image.Image) *Renderer {
	return &Renderer{cfg: cfg, layout: layout, masks: masks}
}

// Config returns the renderer's tuning.
func (r *Renderer) Config() Config { return r.cfg }

// Intensity runs the pipeline up to normalization, returning the
// per-pixel intensity field in [0,1].
func (r *Renderer) Intensity(frame *pressure.Frame) (*Field, error) {
	field, err := BuildField(frame, r.layout, r.cfg.Width, r.cfg.Height)
	if err != nil {
		return nil, err
	}
	return Normalize(Smooth(field, r.cfg.Sigma), r.cfg), nil
}

// Heatmap renders the colorized pressure raster without the
// silhouette.
func (r *Renderer) Heatmap(frame *pressure.Frame) (*image.NRGBA, error) {
	intensity, err := r.Intensity(frame)
	if err != nil {
		return nil, err
	}
	return Colorize(intensity, r.cfg), nil
}

// Render produces the display raster: heatmap composited under the
// frame's foot-silhouette mask.
func (r *Renderer) Render(frame *pressure.Frame) (*image.NRGBA, error) {
	heat, err := r.Heatmap(frame)
	if err != nil {
		return nil, err
	}
	mask, ok := r.masks[frame.Side()]
	if !ok {
		return nil, fmt.Errorf("no silhouette mask for %s foot", frame.Side())
	}
	return Composite(heat, mask)
}

// Legend renders the value-scale bar for the given physical ceiling
// using the renderer's tick count.
func (r *Renderer) Legend(refMax float64) *image.NRGBA {
	return RenderLegend(NewLegendSpec(refMax, r.cfg.TickCount))
}
