package api

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/neurosense/plantar.report/internal/monitoring"
	"github.com/neurosense/plantar.report/internal/pressure"
)

// ErrMaskUnavailable reports that a silhouette mask asset does not
// exist. Callers distinguish this from read or decode failures: a
// missing mask degrades to heatmap-only rendering, a corrupt one is a
// deployment fault.
var ErrMaskUnavailable = errors.New("silhouette mask unavailable")

// LoadMask reads the silhouette PNG for one side from dir and checks
// it against the canvas dimensions. Mask files are named mask_left.png
// and mask_right.png.
func LoadMask(dir string, side pressure.FootSide, width, height int) (image.Image, error) {
	path := filepath.Join(dir, fmt.Sprintf("mask_%s.png", side))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrMaskUnavailable)
		}
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		return nil, fmt.Errorf("mask %s is %dx%d, want %dx%d",
			path, img.Bounds().Dx(), img.Bounds().Dy(), width, height)
	}
	return img, nil
}

// LoadMasks loads whichever silhouette masks exist in dir. A missing
// mask is logged and skipped; anything else fails the load.
func LoadMasks(dir string, width, height int) (map[pressure.FootSide]image.Image, error) {
	masks := make(map[pressure.FootSide]image.Image)
	for _, side := range []pressure.FootSide{pressure.FootLeft, pressure.FootRight} {
		img, err := LoadMask(dir, side, width, height)
		if err != nil {
			if errors.Is(err, ErrMaskUnavailable) {
				monitoring.Logf("no %s mask in %s, rendering without silhouette", side, dir)
				continue
			}
			return nil, err
		}
		masks[side] = img
	}
	return masks, nil
}
