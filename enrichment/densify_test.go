package enrichment

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ~1 km of longitude at the equator.
const lonPerKm = 0.0089832

func TestDensifyShortEdgeKeepsEndpoints(t *testing.T) {
	line := orb.LineString{{77.0, 12.97}, {77.00009, 12.97}} // ~10 m

	pts := Densify(line, 100, 2)

	require.Len(t, pts, 2)
	assert.Equal(t, line[0], pts[0])
	assert.Equal(t, line[1], pts[1])
}

func TestDensifyMinSamplesFloor(t *testing.T) {
	line := orb.LineString{{77.0, 12.97}, {77.00009, 12.97}}

	pts := Densify(line, 100, 5)

	require.Len(t, pts, 5)
	assert.Equal(t, line[0], pts[0])
	assert.Equal(t, line[1], pts[len(pts)-1])
}

func TestDensifySpacingBound(t *testing.T) {
	// Three vertices spanning ~2 km.
	line := orb.LineString{
		{77.0, 0},
		{77.0 + lonPerKm, 0},
		{77.0 + 2*lonPerKm, 0},
	}

	pts := Densify(line, 200, 2)

	require.GreaterOrEqual(t, len(pts), 10)
	for i := 1; i < len(pts); i++ {
		gap := geo.Distance(pts[i-1], pts[i])
		assert.LessOrEqual(t, gap, 200.001, "gap %d exceeds spacing", i)
	}
	assert.Contains(t, pts, line[0])
	assert.Contains(t, pts, line[1])
	assert.Contains(t, pts, line[2])
}

func TestDensifySkipsDuplicateVertices(t *testing.T) {
	line := orb.LineString{{77.0, 0}, {77.0, 0}, {77.0001, 0}}

	pts := Densify(line, 100, 2)

	require.GreaterOrEqual(t, len(pts), 2)
	assert.Equal(t, orb.Point{77.0, 0}, pts[0])
	assert.Equal(t, orb.Point{77.0001, 0}, pts[len(pts)-1])
}

func TestDensifyAllCoincident(t *testing.T) {
	line := orb.LineString{{77.0, 12.97}, {77.0, 12.97}}

	pts := Densify(line, 100, 3)

	require.Len(t, pts, 3)
	for _, p := range pts {
		assert.Equal(t, line[0], p)
	}
}

func TestLengthMeters(t *testing.T) {
	line := orb.LineString{{77.0, 0}, {77.0 + lonPerKm, 0}}
	assert.InDelta(t, 1000, LengthMeters(line), 1)

	// Duplicate consecutive points contribute nothing.
	withDup := orb.LineString{{77.0, 0}, {77.0, 0}, {77.0 + lonPerKm, 0}}
	assert.Equal(t, LengthMeters(line), LengthMeters(withDup))

	assert.Equal(t, 0.0, LengthMeters(orb.LineString{{77.0, 0}, {77.0, 0}}))
}
