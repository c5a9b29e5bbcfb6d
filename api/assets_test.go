package api

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosense/plantar.report/internal/pressure"
)

func writeMask(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))))
}

func TestLoadMask(t *testing.T) {
	dir := t.TempDir()
	writeMask(t, filepath.Join(dir, "mask_left.png"), 68, 90)

	img, err := LoadMask(dir, pressure.FootLeft, 68, 90)
	require.NoError(t, err)
	assert.Equal(t, 68, img.Bounds().Dx())
}

func TestLoadMaskMissing(t *testing.T) {
	_, err := LoadMask(t.TempDir(), pressure.FootLeft, 68, 90)
	assert.ErrorIs(t, err, ErrMaskUnavailable)
}

func TestLoadMaskWrongDimensions(t *testing.T) {
	dir := t.TempDir()
	writeMask(t, filepath.Join(dir, "mask_right.png"), 10, 10)

	_, err := LoadMask(dir, pressure.FootRight, 68, 90)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaskUnavailable)
}

func TestLoadMaskCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mask_left.png"), []byte("not a png"), 0o644))

	_, err := LoadMask(dir, pressure.FootLeft, 68, 90)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaskUnavailable)
}

func TestLoadMasksSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	writeMask(t, filepath.Join(dir, "mask_right.png"), 68, 90)

	masks, err := LoadMasks(dir, 68, 90)
	require.NoError(t, err)
	assert.Len(t, masks, 1)
	assert.Contains(t, masks, pressure.FootRight)
}

func TestLoadMasksFailsOnBadAsset(t *testing.T) {
	dir := t.TempDir()
	writeMask(t, filepath.Join(dir, "mask_left.png"), 5, 5)

	_, err := LoadMasks(dir, 68, 90)
	assert.Error(t, err)
}
