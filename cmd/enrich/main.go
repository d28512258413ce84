// Command enrich loads a road graph and an elevation raster, computes length
// and average elevation for every edge, and writes the enriched graph in
// node-link JSON, gob, CSV and GeoJSON form.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/TISBHACKS2026/intel-igence/enrichment"
	"github.com/TISBHACKS2026/intel-igence/graph"
	"github.com/TISBHACKS2026/intel-igence/raster"
)

func main() {
	graphPath := flag.String("graph", "data/graph.json", "input node-link JSON graph")
	rasterPath := flag.String("raster", "", "elevation raster (.asc or .hgt), required")
	outDir := flag.String("out", "data", "output directory")
	spacing := flag.Float64("spacing", enrichment.DefaultMaxSpacing, "max meters between elevation samples along an edge")
	minSamples := flag.Int("min-samples", enrichment.DefaultMinSamples, "minimum elevation samples per edge")
	flag.Parse()

	if *rasterPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	log.Printf("Loading graph from %s", *graphPath)
	g, err := graph.LoadFromFile(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	log.Printf("Opening raster %s", *rasterPath)
	r, err := raster.Open(*rasterPath)
	if err != nil {
		log.Fatalf("Failed to open raster: %v", err)
	}
	log.Printf("Raster: %dx%d, EPSG:%d", r.Width, r.Height, r.EPSG)

	enricher, err := enrichment.New(r, enrichment.Options{
		MaxSpacingMeters: *spacing,
		MinSamples:       *minSamples,
	})
	if err != nil {
		log.Fatalf("Failed to set up enrichment: %v", err)
	}

	stats, err := enricher.EnrichGraph(g)
	if err != nil {
		log.Fatalf("Enrichment failed: %v", err)
	}
	log.Printf("Enriched %d edges (%d without elevation coverage)", stats.Edges, stats.NoElevation)

	// Outputs are written only after the whole pass succeeded, so a fatal
	// error above leaves no partial files behind.
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	writes := []struct {
		name string
		fn   func() error
	}{
		{"graph_enriched.json", func() error {
			return graph.WriteNodeLinkJSON(g, filepath.Join(*outDir, "graph_enriched.json"))
		}},
		{"graph_enriched.gob", func() error {
			return graph.WriteGob(g, filepath.Join(*outDir, "graph_enriched.gob"))
		}},
		{"nodes.csv / edges.csv", func() error {
			return graph.WriteCSV(g, filepath.Join(*outDir, "nodes.csv"), filepath.Join(*outDir, "edges.csv"))
		}},
		{"nodes.geojson", func() error {
			return graph.WriteGeoJSON(graph.NodesFeatureCollection(g), filepath.Join(*outDir, "nodes.geojson"))
		}},
		{"edges.geojson", func() error {
			return graph.WriteGeoJSON(graph.EdgesFeatureCollection(g), filepath.Join(*outDir, "edges.geojson"))
		}},
	}
	for _, w := range writes {
		if err := w.fn(); err != nil {
			log.Fatalf("Failed to write %s: %v", w.name, err)
		}
	}

	log.Printf("Finished enriching graph. Saved to: %s", *outDir)
}
