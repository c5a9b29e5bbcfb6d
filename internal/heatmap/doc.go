// Package heatmap turns sparse per-sensor pressure readings into
// color-coded rasters: sensor placement onto a dense grid, gaussian
// diffusion, intensity normalization, HSV colorization, silhouette
// compositing and legend generation.
//
// Every stage is a pure transform over immutable inputs; rendering the
// same frame twice under the same Config yields byte-identical output.
// The package performs no file or network I/O: silhouette masks are
// decoded by the caller and passed in.
package heatmap
