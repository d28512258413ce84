// Package enrichment computes physical attributes for road graph edges by
// sampling an elevation raster along each edge geometry.
package enrichment

import (
	"errors"
	"fmt"
	"math"

	"github.com/TISBHACKS2026/intel-igence/crs"
	"github.com/TISBHACKS2026/intel-igence/graph"
	"github.com/TISBHACKS2026/intel-igence/raster"
	"github.com/paulmach/orb"
)

const (
	// DefaultMaxSpacing bounds the gap between elevation samples along an
	// edge. 100 m keeps grade information on hilly terrain without blowing
	// up the sample count on long straight edges.
	DefaultMaxSpacing = 100.0

	// DefaultMinSamples guarantees both endpoints of even the shortest edge
	// are sampled.
	DefaultMinSamples = 2
)

// ErrAntimeridian marks edge geometries whose consecutive vertices lie on
// opposite sides of the ±180° meridian. Distances across the wrap would be
// silently wrong, so such input is rejected.
var ErrAntimeridian = errors.New("edge geometry spans the antimeridian")

type Options struct {
	// MaxSpacingMeters is the largest allowed gap between consecutive
	// elevation samples. Zero means DefaultMaxSpacing.
	MaxSpacingMeters float64
	// MinSamples is the minimum number of samples per edge.
	// Zero means DefaultMinSamples.
	MinSamples int
}

// Stats summarizes an enrichment pass.
type Stats struct {
	Edges       int
	NoElevation int
}

// Enricher writes length and average elevation onto edge attribute sets.
// It holds only read-only state, so edges may be enriched in any order.
type Enricher struct {
	raster    *raster.Raster
	transform crs.PointTransform
	opts      Options
}

// New builds an enricher for one raster. Fails with a CoordinateSystemError
// when the raster's CRS cannot be bridged from the graph's.
func New(r *raster.Raster, opts Options) (*Enricher, error) {
	if opts.MaxSpacingMeters <= 0 {
		opts.MaxSpacingMeters = DefaultMaxSpacing
	}
	if opts.MinSamples < 2 {
		opts.MinSamples = DefaultMinSamples
	}

	transform, err := crs.ToRaster(r.EPSG)
	if err != nil {
		return nil, err
	}

	return &Enricher{
		raster:    r,
		transform: transform,
		opts:      opts,
	}, nil
}

// EnrichEdge computes the edge's geodesic length and the mean of all valid
// elevation samples along its geometry, mutating the attribute set in place.
// No-data samples are dropped; if none remain the elevation is marked
// absent, never zero.
func (e *Enricher) EnrichEdge(edge *graph.Edge) error {
	line := edge.Geometry
	if len(line) == 0 {
		return fmt.Errorf("edge %d-%d has no geometry", edge.FromID, edge.ToID)
	}
	if spansAntimeridian(line) {
		return fmt.Errorf("edge %d-%d: %w", edge.FromID, edge.ToID, ErrAntimeridian)
	}

	edge.Attributes.Length = LengthMeters(line)

	sum := 0.0
	valid := 0
	for _, p := range Densify(line, e.opts.MaxSpacingMeters, e.opts.MinSamples) {
		x, y := e.transform(p[0], p[1])
		if v, ok := e.raster.Sample(x, y); ok {
			sum += v
			valid++
		}
	}

	if valid == 0 {
		edge.Attributes.ClearElevation()
	} else {
		edge.Attributes.SetElevation(sum / float64(valid))
	}
	return nil
}

// EnrichGraph runs a single pass over every edge. Edges are independent;
// a failed sample degrades to "no data" and never aborts the pass.
func (e *Enricher) EnrichGraph(g *graph.Graph) (Stats, error) {
	var stats Stats
	for _, edge := range g.Edges {
		if err := e.EnrichEdge(edge); err != nil {
			return stats, err
		}
		stats.Edges++
		if edge.Attributes.AvgElevation == nil {
			stats.NoElevation++
		}
	}
	return stats, nil
}

func spansAntimeridian(line orb.LineString) bool {
	for i := 1; i < len(line); i++ {
		if math.Abs(line[i][0]-line[i-1][0]) > 180 {
			return true
		}
	}
	return false
}
