package graph

import (
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WriteNodeLinkJSON serializes the graph back into the wrapped node-link
// format it was loaded from, with the enriched attributes on every link.
func WriteNodeLinkJSON(g *Graph, path string) error {
	nodes := make([]map[string]interface{}, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, map[string]interface{}{
			"id":           n.ID,
			"x":            n.Longitude,
			"y":            n.Latitude,
			"lon":          n.Longitude,
			"lat":          n.Latitude,
			"street_count": n.StreetCount,
		})
	}

	links := make([]map[string]interface{}, 0, len(g.Edges))
	for _, e := range g.Edges {
		link := map[string]interface{}{
			"source": e.FromID,
			"target": e.ToID,
			"key":    e.Key,
			"geometry": map[string]interface{}{
				"type":        "LineString",
				"coordinates": e.Geometry,
			},
			"length":        e.Attributes.Length,
			"avg_elevation": e.Attributes.AvgElevation,
		}
		for k, v := range e.Attributes.Extra {
			link[k] = v
		}
		links = append(links, link)
	}

	doc := map[string]interface{}{
		"metadata": map[string]interface{}{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"node_count":   len(g.Nodes),
			"edge_count":   len(g.Edges),
		},
		"graph": map[string]interface{}{
			"directed":   g.Directed,
			"multigraph": g.Multigraph,
			"graph":      map[string]interface{}{"crs": g.CRS},
			"nodes":      nodes,
			"links":      links,
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode node-link JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteGob stores the whole graph as a gob binary dump.
func WriteGob(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create GOB file %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf("failed to encode GOB to %s: %w", path, err)
	}
	return nil
}

// LoadGob reads a graph previously stored with WriteGob.
func LoadGob(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var g Graph
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode GOB from %s: %w", path, err)
	}
	return &g, nil
}

// WriteCSV exports flat node and edge tables.
func WriteCSV(g *Graph, nodesPath, edgesPath string) error {
	nf, err := os.Create(nodesPath)
	if err != nil {
		return err
	}
	defer nf.Close()

	nw := csv.NewWriter(nf)
	if err := nw.Write([]string{"id", "lon", "lat", "street_count"}); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		rec := []string{
			strconv.FormatInt(n.ID, 10),
			strconv.FormatFloat(n.Longitude, 'f', -1, 64),
			strconv.FormatFloat(n.Latitude, 'f', -1, 64),
			strconv.Itoa(n.StreetCount),
		}
		if err := nw.Write(rec); err != nil {
			return err
		}
	}
	nw.Flush()
	if err := nw.Error(); err != nil {
		return err
	}

	ef, err := os.Create(edgesPath)
	if err != nil {
		return err
	}
	defer ef.Close()

	ew := csv.NewWriter(ef)
	if err := ew.Write([]string{"from_id", "to_id", "key", "length", "avg_elevation"}); err != nil {
		return err
	}
	for _, e := range g.Edges {
		elev := ""
		if e.Attributes.AvgElevation != nil {
			elev = strconv.FormatFloat(*e.Attributes.AvgElevation, 'f', -1, 64)
		}
		rec := []string{
			strconv.FormatInt(e.FromID, 10),
			strconv.FormatInt(e.ToID, 10),
			strconv.Itoa(e.Key),
			strconv.FormatFloat(e.Attributes.Length, 'f', -1, 64),
			elev,
		}
		if err := ew.Write(rec); err != nil {
			return err
		}
	}
	ew.Flush()
	return ew.Error()
}

// NodesFeatureCollection builds a GeoJSON point collection of all nodes.
func NodesFeatureCollection(g *Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range g.Nodes {
		f := geojson.NewFeature(orb.Point{n.Longitude, n.Latitude})
		f.ID = n.ID
		f.Properties["id"] = n.ID
		f.Properties["street_count"] = n.StreetCount
		fc.Append(f)
	}
	return fc
}

// EdgesFeatureCollection builds a GeoJSON line collection of all edges with
// the enriched attributes as feature properties. avg_elevation is null for
// edges without raster coverage.
func EdgesFeatureCollection(g *Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range g.Edges {
		f := geojson.NewFeature(e.Geometry)
		f.Properties["from_id"] = e.FromID
		f.Properties["to_id"] = e.ToID
		f.Properties["key"] = e.Key
		f.Properties["length"] = e.Attributes.Length
		if e.Attributes.AvgElevation != nil {
			f.Properties["avg_elevation"] = *e.Attributes.AvgElevation
		} else {
			f.Properties["avg_elevation"] = nil
		}
		for k, v := range e.Attributes.Extra {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes a feature collection to a file.
func WriteGeoJSON(fc *geojson.FeatureCollection, path string) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
