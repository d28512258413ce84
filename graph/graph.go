package graph

import (
	"github.com/paulmach/orb"
)

// Node represents a graph node (intersection).
type Node struct {
	ID          int64
	Longitude   float64
	Latitude    float64
	StreetCount int
}

// EdgeAttributes holds the physical attributes computed for an edge plus any
// pass-through attributes from the source graph.
type EdgeAttributes struct {
	// Length of the edge geometry in meters.
	Length float64
	// AvgElevation is the mean terrain elevation along the edge in meters.
	// Nil means no valid elevation sample covered the edge.
	AvgElevation *float64
	// Extra carries source attributes (highway class, name, oneway, ...)
	// that this system does not interpret.
	Extra map[string]string
}

// Edge is a directed connection between two nodes. Geometry always has at
// least two points; the degenerate case is the two endpoint coordinates.
type Edge struct {
	FromID     int64
	ToID       int64
	Key        int
	Geometry   orb.LineString
	Attributes EdgeAttributes
}

type Graph struct {
	Directed   bool
	Multigraph bool
	CRS        string
	Nodes      map[int64]Node
	Edges      []*Edge
}

func New() *Graph {
	return &Graph{
		Nodes: make(map[int64]Node),
	}
}

// SetElevation records the mean elevation for the edge.
func (a *EdgeAttributes) SetElevation(meters float64) {
	v := meters
	a.AvgElevation = &v
}

// ClearElevation marks the edge as having no elevation coverage.
func (a *EdgeAttributes) ClearElevation() {
	a.AvgElevation = nil
}
