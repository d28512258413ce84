package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/TISBHACKS2026/intel-igence/crs"
	"github.com/TISBHACKS2026/intel-igence/graph"
	"github.com/TISBHACKS2026/intel-igence/raster"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	roadGraph *graph.Graph

	// Optional: point elevation queries are served only when a raster is
	// configured.
	dem          *raster.Raster
	demTransform crs.PointTransform
)

type elevationRequest struct {
	Points [][]float64 `json:"points"`
}

func loadRoadGraph(path string) (*graph.Graph, error) {
	if strings.HasSuffix(path, ".gob") {
		return graph.LoadGob(path)
	}
	return graph.LoadFromFile(path)
}

func handleRoads(c *gin.Context) {
	c.JSON(http.StatusOK, graph.EdgesFeatureCollection(roadGraph))
}

func handleNodes(c *gin.Context) {
	c.JSON(http.StatusOK, graph.NodesFeatureCollection(roadGraph))
}

// handleElevation samples the raster for a list of [lon, lat] points.
// Points outside coverage or on no-data pixels come back as null.
func handleElevation(c *gin.Context) {
	if dem == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no elevation raster configured"})
		return
	}

	var req elevationRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Points) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": `send JSON with a "points" array [[lon,lat],...]`})
		return
	}

	elevations := make([]*float64, 0, len(req.Points))
	for _, p := range req.Points {
		if len(p) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "each point must be [lon, lat]"})
			return
		}
		x, y := demTransform(p[0], p[1])
		if v, ok := dem.Sample(x, y); ok {
			v := v
			elevations = append(elevations, &v)
		} else {
			elevations = append(elevations, nil)
		}
	}
	c.JSON(http.StatusOK, gin.H{"elevations": elevations})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	graphPath := os.Getenv("GRAPH_PATH")
	if graphPath == "" {
		graphPath = filepath.Join("data", "graph_enriched.gob")
	}

	log.Printf("Loading enriched graph from %s", graphPath)
	var err error
	roadGraph, err = loadRoadGraph(graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph data: %v", err)
	}
	log.Printf("Loaded graph: %d nodes, %d edges", len(roadGraph.Nodes), len(roadGraph.Edges))

	if rasterPath := os.Getenv("RASTER_PATH"); rasterPath != "" {
		dem, err = raster.Open(rasterPath)
		if err != nil {
			log.Fatalf("Failed to open raster: %v", err)
		}
		demTransform, err = crs.ToRaster(dem.EPSG)
		if err != nil {
			log.Fatalf("Failed to set up raster coordinate transform: %v", err)
		}
		log.Printf("Elevation raster ready: %s (EPSG:%d)", rasterPath, dem.EPSG)
	} else {
		log.Println("RASTER_PATH not set, /api/elevation disabled")
	}

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))

	r.GET("/api/roads", handleRoads)
	r.GET("/api/nodes", handleNodes)
	r.POST("/api/elevation", handleElevation)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Road map server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
