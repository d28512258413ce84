package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedGraphJSON = `{
  "metadata": {"title": "test"},
  "graph": {
    "directed": true,
    "multigraph": true,
    "graph": {"crs": "epsg:4326"},
    "nodes": [
      {"id": "1", "x": 77.6395, "y": 12.9725, "street_count": 3},
      {"id": 2, "lon": 77.6410, "lat": 12.9710, "street_count": 2}
    ],
    "links": [
      {
        "source": "1",
        "target": 2,
        "key": 0,
        "osmid": 123456,
        "highway": "residential",
        "name": ["MG Road", "Mahatma Gandhi Road"],
        "geometry": {
          "type": "LineString",
          "coordinates": [[77.6395, 12.9725], [77.6402, 12.9718], [77.6410, 12.9710]]
        }
      },
      {"source": 2, "target": "1", "oneway": true}
    ]
  }
}`

func TestLoadFromJSONWrapped(t *testing.T) {
	g, err := LoadFromJSON([]byte(wrappedGraphJSON))
	require.NoError(t, err)

	assert.True(t, g.Directed)
	assert.True(t, g.Multigraph)
	assert.Equal(t, "epsg:4326", g.CRS)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 2)

	n1 := g.Nodes[1]
	assert.Equal(t, 77.6395, n1.Longitude)
	assert.Equal(t, 12.9725, n1.Latitude)
	assert.Equal(t, 3, n1.StreetCount)

	e := g.Edges[0]
	assert.Equal(t, int64(1), e.FromID)
	assert.Equal(t, int64(2), e.ToID)
	require.Len(t, e.Geometry, 3)
	assert.Equal(t, orb.Point{77.6402, 12.9718}, e.Geometry[1])

	// Attributes this system does not interpret pass through as strings.
	assert.Equal(t, "residential", e.Attributes.Extra["highway"])
	assert.Equal(t, "MG Road,Mahatma Gandhi Road", e.Attributes.Extra["name"])
	assert.Equal(t, "123456", e.Attributes.Extra["osmid"])
	assert.Nil(t, e.Attributes.AvgElevation)
}

func TestLoadFromJSONStraightLineFallback(t *testing.T) {
	g, err := LoadFromJSON([]byte(wrappedGraphJSON))
	require.NoError(t, err)

	// Second link has no geometry; endpoints come from its nodes.
	e := g.Edges[1]
	require.Len(t, e.Geometry, 2)
	assert.Equal(t, orb.Point{77.6410, 12.9710}, e.Geometry[0])
	assert.Equal(t, orb.Point{77.6395, 12.9725}, e.Geometry[1])
	assert.Equal(t, "true", e.Attributes.Extra["oneway"])
}

func TestLoadFromJSONBareNodeLink(t *testing.T) {
	bare := `{
	  "directed": true,
	  "multigraph": false,
	  "graph": {"crs": "epsg:4326"},
	  "nodes": [
	    {"id": 10, "x": 77.0, "y": 12.9},
	    {"id": 11, "x": 77.1, "y": 12.95}
	  ],
	  "links": [{"source": 10, "target": 11}]
	}`

	g, err := LoadFromJSON([]byte(bare))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.False(t, g.Multigraph)
}

func TestLoadFromJSONKeepsEnrichedAttributes(t *testing.T) {
	enriched := `{
	  "graph": {
	    "nodes": [{"id": 1, "x": 77.0, "y": 12.9}, {"id": 2, "x": 77.1, "y": 12.95}],
	    "links": [{"source": 1, "target": 2, "length": 1234.5, "avg_elevation": 612.25}]
	  }
	}`

	g, err := LoadFromJSON([]byte(enriched))
	require.NoError(t, err)

	attrs := g.Edges[0].Attributes
	assert.Equal(t, 1234.5, attrs.Length)
	require.NotNil(t, attrs.AvgElevation)
	assert.Equal(t, 612.25, *attrs.AvgElevation)
	assert.NotContains(t, attrs.Extra, "length")
	assert.NotContains(t, attrs.Extra, "avg_elevation")
}

func TestLoadFromJSONErrors(t *testing.T) {
	_, err := LoadFromJSON([]byte(`not json`))
	require.Error(t, err)

	_, err = LoadFromJSON([]byte(`{"graph": {"nodes": [], "links": []}}`))
	require.Error(t, err)

	// Link referencing a node that does not exist and carrying no geometry.
	_, err = LoadFromJSON([]byte(`{
	  "graph": {
	    "nodes": [{"id": 1, "x": 77.0, "y": 12.9}],
	    "links": [{"source": 1, "target": 99}]
	  }
	}`))
	require.Error(t, err)
}
