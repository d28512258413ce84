// Package crs reconciles the road graph's geographic coordinates with the
// elevation raster's native coordinate reference system.
package crs

import (
	"fmt"

	"github.com/wroge/wgs84"
)

// GraphEPSG is the coordinate reference system of the road graph:
// WGS84 longitude/latitude.
const GraphEPSG = 4326

// CoordinateSystemError reports a missing or unusable coordinate reference
// system. It is fatal: no meaningful sampling can proceed without a CRS.
type CoordinateSystemError struct {
	Reason string
}

func (e *CoordinateSystemError) Error() string {
	return "coordinate system: " + e.Reason
}

// PointTransform maps a WGS84 (lon, lat) pair into another coordinate space.
type PointTransform func(lon, lat float64) (x, y float64)

// ToRaster builds a reusable transform from graph coordinates into the
// raster's CRS given by EPSG code. When the raster already is WGS84 the
// transform is the identity and passes coordinates through unchanged.
func ToRaster(epsg int) (PointTransform, error) {
	if epsg == 0 {
		return nil, &CoordinateSystemError{Reason: "raster has no EPSG code"}
	}
	if epsg == GraphEPSG {
		return func(lon, lat float64) (float64, float64) {
			return lon, lat
		}, nil
	}

	target := wgs84.EPSG().Code(epsg)
	if target == nil {
		return nil, &CoordinateSystemError{Reason: fmt.Sprintf("unsupported EPSG code %d", epsg)}
	}

	f := wgs84.LonLat().To(target)
	return func(lon, lat float64) (float64, float64) {
		x, y, _ := f(lon, lat, 0)
		return x, y
	}, nil
}
