package heatmap

import "github.com/neurosense/plantar.report/internal/pressure"

// Canvas dimensions of the working raster. All fields, color grids and
// masks of one run share these dimensions.
const (
	CanvasW = 340
	CanvasH = 450
)

// Mode selects the normalization and alpha policy for a render.
type Mode string

const (
	// ModeRelative stretches each frame to its own min/max. The scale
	// carries no physical meaning but always uses the full color range,
	// and the heatmap keeps a translucent haze even at zero intensity.
	ModeRelative Mode = "relative"

	// ModeAbsolute maps readings against a fixed physical ceiling so
	// frames are comparable, with full transparency below a 2% floor.
	ModeAbsolute Mode = "absolute"
)

// Config carries the tuning for one rendering pipeline. A Config is
// never mutated mid-render; policies are selected here, not mixed.
type Config struct {
	Width  int
	Height int

	// Sigma is the gaussian diffusion radius in pixel units.
	Sigma float64

	// Gamma is the normalization contrast exponent.
	Gamma float64

	// Delta is the colorization contrast exponent, applied on top of
	// Gamma when mapping intensity to hue.
	Delta float64

	Mode Mode

	// UnitFactor converts raw ADC units to physical units (kPa).
	// Used by ModeAbsolute and by peak reporting.
	UnitFactor float64

	// ReferenceMax is the fixed physical-scale ceiling for
	// ModeAbsolute. Values <= 0 are replaced by a safe default.
	ReferenceMax float64

	// TickCount is the number of legend ticks, final tick included.
	TickCount int
}

// DefaultConfig returns the reference tuning for the 9-sensor insole.
func DefaultConfig() Config {
	return Config{
		Width:        CanvasW,
		Height:       CanvasH,
		Sigma:        60,
		Gamma:        0.7,
		Delta:        0.8,
		Mode:         ModeRelative,
		UnitFactor:   pressure.KPaPerUnit,
		ReferenceMax: 280,
		TickCount:    6,
	}
}
