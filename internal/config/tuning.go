package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neurosense/plantar.report/internal/heatmap"
)

// DefaultConfigPath is the path to the canonical render defaults file.
// This is the single source of truth for all default render values.
const DefaultConfigPath = "config/render.defaults.json"

// RenderConfig represents the root configuration for heatmap render
// parameters. The schema matches the /api/render/params endpoint so
// the same JSON can be used for both startup configuration and runtime
// updates. All fields are pointers so a partial file only overrides
// what it names.
type RenderConfig struct {
	// Canvas params
	CanvasWidth  *int `json:"canvas_width,omitempty"`
	CanvasHeight *int `json:"canvas_height,omitempty"`

	// Shaping params
	Sigma *float64 `json:"sigma,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`
	Delta *float64 `json:"delta,omitempty"`

	// Scaling params
	Mode         *string  `json:"mode,omitempty"` // "relative" or "absolute"
	UnitFactor   *float64 `json:"unit_factor,omitempty"`
	ReferenceMax *float64 `json:"reference_max,omitempty"`
	TickCount    *int     `json:"tick_count,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyRenderConfig returns a RenderConfig with all fields set to nil.
// Use LoadRenderConfig to load actual values from the defaults file.
func EmptyRenderConfig() *RenderConfig {
	return &RenderConfig{}
}

// LoadRenderConfig loads a RenderConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRenderConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RenderConfig) Validate() error {
	if c.CanvasWidth != nil && *c.CanvasWidth <= 0 {
		return fmt.Errorf("canvas_width must be positive, got %d", *c.CanvasWidth)
	}
	if c.CanvasHeight != nil && *c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas_height must be positive, got %d", *c.CanvasHeight)
	}
	if c.Sigma != nil && *c.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %f", *c.Sigma)
	}
	if c.Gamma != nil && *c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %f", *c.Gamma)
	}
	if c.Delta != nil && *c.Delta <= 0 {
		return fmt.Errorf("delta must be positive, got %f", *c.Delta)
	}
	if c.Mode != nil {
		switch heatmap.Mode(*c.Mode) {
		case heatmap.ModeRelative, heatmap.ModeAbsolute:
		default:
			return fmt.Errorf("mode must be %q or %q, got %q",
				heatmap.ModeRelative, heatmap.ModeAbsolute, *c.Mode)
		}
	}
	if c.UnitFactor != nil && *c.UnitFactor <= 0 {
		return fmt.Errorf("unit_factor must be positive, got %f", *c.UnitFactor)
	}
	if c.TickCount != nil && *c.TickCount < 2 {
		return fmt.Errorf("tick_count must be at least 2, got %d", *c.TickCount)
	}
	return nil
}

// Apply overlays the set fields onto base and returns the result.
// Unset fields keep the base value.
func (c *RenderConfig) Apply(base heatmap.Config) heatmap.Config {
	if c.CanvasWidth != nil {
		base.Width = *c.CanvasWidth
	}
	if c.CanvasHeight != nil {
		base.Height = *c.CanvasHeight
	}
	if c.Sigma != nil {
		base.Sigma = *c.Sigma
	}
	if c.Gamma != nil {
		base.Gamma = *c.Gamma
	}
	if c.Delta != nil {
		base.Delta = *c.Delta
	}
	if c.Mode != nil {
		base.Mode = heatmap.Mode(*c.Mode)
	}
	if c.UnitFactor != nil {
		base.UnitFactor = *c.UnitFactor
	}
	if c.ReferenceMax != nil {
		base.ReferenceMax = *c.ReferenceMax
	}
	if c.TickCount != nil {
		base.TickCount = *c.TickCount
	}
	return base
}

// GetMode returns the mode value or the default.
func (c *RenderConfig) GetMode() heatmap.Mode {
	if c.Mode == nil {
		return heatmap.ModeRelative
	}
	return heatmap.Mode(*c.Mode)
}

// GetSigma returns the sigma value or the default.
func (c *RenderConfig) GetSigma() float64 {
	if c.Sigma == nil {
		return heatmap.DefaultConfig().Sigma
	}
	return *c.Sigma
}

// GetReferenceMax returns the reference_max value or the default.
func (c *RenderConfig) GetReferenceMax() float64 {
	if c.ReferenceMax == nil {
		return heatmap.DefaultConfig().ReferenceMax
	}
	return *c.ReferenceMax
}
