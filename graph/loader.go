package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type jsonNode struct {
	ID          interface{} `json:"id"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Lon         float64     `json:"lon"`
	Lat         float64     `json:"lat"`
	StreetCount int         `json:"street_count"`
}

type nodeLink struct {
	Directed   bool `json:"directed"`
	Multigraph bool `json:"multigraph"`
	Graph      struct {
		CRS string `json:"crs"`
	} `json:"graph"`
	Nodes []jsonNode               `json:"nodes"`
	Links []map[string]interface{} `json:"links"`
}

// wrappedNodeLink is the export format that nests the node-link payload under
// a metadata envelope.
type wrappedNodeLink struct {
	Graph nodeLink `json:"graph"`
}

// link keys consumed by the loader; everything else goes to Extra.
var reservedLinkKeys = map[string]bool{
	"source":        true,
	"target":        true,
	"key":           true,
	"geometry":      true,
	"length":        true,
	"avg_elevation": true,
}

func convertID(id interface{}) (int64, error) {
	switch v := id.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", id)
	}
}

func convertToString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fmt.Sprintf("%v", e))
		}
		return strings.Join(parts, ",")
	case json.Number:
		return v.String()
	default:
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%v", v)
	}
}

func convertFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// convertLineString parses a GeoJSON-like geometry object
// ({"type":"LineString","coordinates":[[lon,lat],...]}) from a decoded link.
func convertLineString(val interface{}) (orb.LineString, bool) {
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, false
	}
	coords, ok := m["coordinates"].([]interface{})
	if !ok || len(coords) < 2 {
		return nil, false
	}
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		pair, ok := c.([]interface{})
		if !ok || len(pair) < 2 {
			return nil, false
		}
		lon, okLon := convertFloat(pair[0])
		lat, okLat := convertFloat(pair[1])
		if !okLon || !okLat {
			return nil, false
		}
		line = append(line, orb.Point{lon, lat})
	}
	return line, true
}

// LoadFromJSON parses a node-link JSON graph, either wrapped under a
// metadata envelope or bare.
func LoadFromJSON(data []byte) (*Graph, error) {
	var wrapped wrappedNodeLink
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	nl := wrapped.Graph
	if len(nl.Nodes) == 0 {
		dec = json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&nl); err != nil {
			return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
		}
	}
	if len(nl.Nodes) == 0 {
		return nil, fmt.Errorf("graph JSON contains no nodes")
	}

	g := New()
	g.Directed = nl.Directed
	g.Multigraph = nl.Multigraph
	g.CRS = nl.Graph.CRS

	for _, n := range nl.Nodes {
		nodeID, err := convertID(n.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to convert node ID (%v): %w", n.ID, err)
		}

		lat := n.Lat
		lon := n.Lon
		if lat == 0 && lon == 0 {
			lat = n.Y
			lon = n.X
		}

		g.Nodes[nodeID] = Node{
			ID:          nodeID,
			Longitude:   lon,
			Latitude:    lat,
			StreetCount: n.StreetCount,
		}
	}

	for _, l := range nl.Links {
		sourceID, err := convertID(l["source"])
		if err != nil {
			return nil, fmt.Errorf("failed to convert source ID (%v): %w", l["source"], err)
		}
		targetID, err := convertID(l["target"])
		if err != nil {
			return nil, fmt.Errorf("failed to convert target ID (%v): %w", l["target"], err)
		}

		key := 0
		if k, ok := convertFloat(l["key"]); ok {
			key = int(k)
		}

		geom, ok := convertLineString(l["geometry"])
		if !ok {
			geom, err = straightLine(g, sourceID, targetID)
			if err != nil {
				return nil, err
			}
		}

		extra := make(map[string]string)
		for k, v := range l {
			if !reservedLinkKeys[k] {
				extra[k] = convertToString(v)
			}
		}

		// Pre-enriched graphs carry these already; keep them so an enriched
		// export loads back losslessly.
		attrs := EdgeAttributes{Extra: extra}
		if length, ok := convertFloat(l["length"]); ok {
			attrs.Length = length
		}
		if elev, ok := convertFloat(l["avg_elevation"]); ok {
			attrs.SetElevation(elev)
		}

		g.Edges = append(g.Edges, &Edge{
			FromID:     sourceID,
			ToID:       targetID,
			Key:        key,
			Geometry:   geom,
			Attributes: attrs,
		})
	}

	return g, nil
}

// straightLine builds a two-point geometry from the endpoint nodes of an
// edge that carries no geometry of its own.
func straightLine(g *Graph, fromID, toID int64) (orb.LineString, error) {
	from, ok := g.Nodes[fromID]
	if !ok {
		return nil, fmt.Errorf("edge references unknown node %d", fromID)
	}
	to, ok := g.Nodes[toID]
	if !ok {
		return nil, fmt.Errorf("edge references unknown node %d", toID)
	}
	return orb.LineString{
		{from.Longitude, from.Latitude},
		{to.Longitude, to.Latitude},
	}, nil
}

func LoadFromFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read graph file: %w", err)
	}
	return LoadFromJSON(data)
}
