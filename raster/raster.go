// Package raster reads single-band elevation grids and answers point
// elevation queries in the grid's native coordinate space.
package raster

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Affine maps fractional pixel indices (col, row) to spatial coordinates.
// Coordinates refer to pixel centers: (0, 0) is the center of the top-left
// pixel.
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// Invert returns the inverse mapping from spatial coordinates to pixel
// indices. Fails for degenerate transforms.
func (t Affine) Invert() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return Affine{}, fmt.Errorf("affine transform is not invertible")
	}
	inv := Affine{
		A: t.E / det,
		B: -t.B / det,
		D: -t.D / det,
		E: t.A / det,
	}
	inv.C = -(inv.A*t.C + inv.B*t.F)
	inv.F = -(inv.D*t.C + inv.E*t.F)
	return inv, nil
}

// Raster is a read-only single-band elevation grid with georeferencing.
type Raster struct {
	Width  int
	Height int
	// EPSG code of the grid's coordinate reference system.
	EPSG int
	// NoData is the sentinel value meaning "no valid measurement here".
	NoData    float64
	Transform Affine

	inverse Affine
	data    []float64
}

// New assembles a raster from a parsed grid. data is in row-major order
// starting at the top-left pixel.
func New(width, height, epsg int, noData float64, transform Affine, data []float64) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("raster data has %d values, want %d", len(data), width*height)
	}
	inv, err := transform.Invert()
	if err != nil {
		return nil, err
	}
	return &Raster{
		Width:     width,
		Height:    height,
		EPSG:      epsg,
		NoData:    noData,
		Transform: transform,
		inverse:   inv,
		data:      data,
	}, nil
}

// Value returns the raw grid value at integer pixel indices.
func (r *Raster) Value(col, row int) float64 {
	return r.data[row*r.Width+col]
}

// Sample returns the elevation at a point in the raster's coordinate space.
// The point is mapped to the nearest pixel. ok is false when the point falls
// outside the grid or hits the no-data sentinel; out-of-bounds points are an
// expected condition near the coverage boundary, not an error.
func (r *Raster) Sample(x, y float64) (elevation float64, ok bool) {
	fcol, frow := r.inverse.Apply(x, y)
	col := int(math.Round(fcol))
	row := int(math.Round(frow))
	if col < 0 || col >= r.Width || row < 0 || row >= r.Height {
		return 0, false
	}
	v := r.Value(col, row)
	if v == r.NoData || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Open reads an elevation raster, choosing the format by file extension.
// Supported: ESRI ASCII grids (.asc, with a .prj sidecar declaring the CRS)
// and SRTM tiles (.hgt).
func Open(path string) (*Raster, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		return OpenASCIIGrid(path)
	case ".hgt":
		return OpenSRTM(path)
	default:
		return nil, fmt.Errorf("unsupported raster format %q", filepath.Ext(path))
	}
}
