package enrichment

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// LengthMeters sums the great-circle distances between consecutive vertices
// of a polyline. Duplicate consecutive points contribute nothing.
func LengthMeters(line orb.LineString) float64 {
	total := 0.0
	for i := 1; i < len(line); i++ {
		if line[i] == line[i-1] {
			continue
		}
		total += geo.Distance(line[i-1], line[i])
	}
	return total
}

// Densify returns an ordered sequence of sample points along the polyline.
// Every original vertex is kept; between consecutive vertices farther apart
// than maxSpacing meters, evenly spaced points are inserted so that no gap
// exceeds the threshold. The result always has at least minSamples points,
// even for a short single-segment edge.
func Densify(line orb.LineString, maxSpacing float64, minSamples int) []orb.Point {
	if len(line) == 0 {
		return nil
	}
	if maxSpacing <= 0 {
		maxSpacing = DefaultMaxSpacing
	}
	pts := densify(line, maxSpacing)
	if len(pts) >= minSamples {
		return pts
	}

	total := LengthMeters(line)
	if total > 0 {
		return densify(line, total/float64(minSamples-1))
	}

	// All vertices coincide; repeat the single location.
	for len(pts) < minSamples {
		pts = append(pts, pts[0])
	}
	return pts
}

func densify(line orb.LineString, maxSpacing float64) []orb.Point {
	pts := []orb.Point{line[0]}
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		if a == b {
			// Zero-length segment; keep a single copy of the vertex.
			continue
		}
		d := geo.Distance(a, b)
		steps := 1
		for float64(steps)*maxSpacing < d {
			steps++
		}
		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			pts = append(pts, orb.Point{
				a[0] + (b[0]-a[0])*t,
				a[1] + (b[1]-a[1])*t,
			})
		}
		pts = append(pts, b)
	}
	return pts
}
