package crs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRasterIdentity(t *testing.T) {
	f, err := ToRaster(4326)
	require.NoError(t, err)

	lon, lat := 77.6395, 12.9725
	x, y := f(lon, lat)

	// Matching systems must not introduce any transform drift.
	assert.Equal(t, lon, x)
	assert.Equal(t, lat, y)
}

func TestToRasterWebMercator(t *testing.T) {
	f, err := ToRaster(3857)
	require.NoError(t, err)

	x, y := f(1, 0)
	assert.InDelta(t, 111319.49, x, 0.1)
	assert.InDelta(t, 0, y, 0.1)
}

func TestToRasterMissingCRS(t *testing.T) {
	_, err := ToRaster(0)

	var csErr *CoordinateSystemError
	require.ErrorAs(t, err, &csErr)
}

func TestToRasterUnknownEPSG(t *testing.T) {
	_, err := ToRaster(999999)

	var csErr *CoordinateSystemError
	require.ErrorAs(t, err, &csErr)
}
