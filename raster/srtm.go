package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SRTM void sentinel.
const srtmNoData = -32768.0

// OpenSRTM reads a 1°x1° SRTM elevation tile (.hgt). Tiles are named by
// their south-west corner (e.g. N12E077.hgt), store big-endian int16 samples
// row-wise from the north edge, and are always WGS84.
func OpenSRTM(path string) (*Raster, error) {
	swLat, swLon, err := parseSRTMName(filepath.Base(path))
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read raster file: %w", err)
	}

	var n int
	switch len(b) {
	case 1201 * 1201 * 2:
		n = 1201 // SRTM3, 3 arc-second
	case 3601 * 3601 * 2:
		n = 3601 // SRTM1, 1 arc-second
	default:
		return nil, fmt.Errorf("%s is not an SRTM tile: unexpected size %d", path, len(b))
	}

	data := make([]float64, n*n)
	for i := range data {
		data[i] = float64(int16(uint16(b[2*i])<<8 | uint16(b[2*i+1])))
	}

	cell := 1.0 / float64(n-1)
	transform := Affine{
		A: cell, C: float64(swLon),
		E: -cell, F: float64(swLat) + 1,
	}
	return New(n, n, 4326, srtmNoData, transform, data)
}

func parseSRTMName(name string) (lat, lon int, err error) {
	base := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
	var ns, ew string
	if _, err := fmt.Sscanf(base, "%1s%d%1s%d", &ns, &lat, &ew, &lon); err != nil {
		return 0, 0, fmt.Errorf("%s is not an SRTM tile name: %w", name, err)
	}
	switch ns {
	case "N":
	case "S":
		lat = -lat
	default:
		return 0, 0, fmt.Errorf("%s is not an SRTM tile name", name)
	}
	switch ew {
	case "E":
	case "W":
		lon = -lon
	default:
		return 0, 0, fmt.Errorf("%s is not an SRTM tile name", name)
	}
	return lat, lon, nil
}
