// cmd/view/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/config"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/event"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/graph"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
	engorender "github.com/simulatedScience/go-ttr-mapgen/pkg/render/engo"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/validation"
)

func main() {
	configPath := flag.String("config", "map.json", "Path to map configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	// Load configuration
	var mapConfig *config.MapConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Map configuration file not found, using default map")
		mapConfig = config.DefaultConfig()
	} else {
		mapConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load map configuration: %v", err)
		}
	}

	if err := config.ApplyEnvironmentOverrides(mapConfig); err != nil {
		log.Fatalf("Failed to apply environment configuration: %v", err)
	}

	if err := validation.ValidateMapConfig(mapConfig); err != nil {
		log.Fatalf("Invalid map configuration: %v", err)
	}

	mapGraph, err := buildGraph(mapConfig)
	if err != nil {
		log.Fatalf("Failed to build particle graph: %v", err)
	}

	eventBus := event.NewEventBus()
	scene := engorender.NewMapScene(mapGraph, mapConfig, eventBus)

	opts := engo.RunOptions{
		Title:      "TTR Map Layout: " + mapConfig.Name,
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
	}

	log.Printf("Starting map view for %q with %d particles",
		mapConfig.Name, len(mapGraph.Particles()))
	engo.Run(opts, scene)
}

// buildGraph assembles the particle graph from a validated map configuration.
func buildGraph(cfg *config.MapConfig) (*graph.Graph, error) {
	mapGraph := graph.New()

	for _, loc := range cfg.Locations {
		if _, err := mapGraph.AddNode(loc.Name, physics.Vector2D{X: loc.X, Y: loc.Y}); err != nil {
			return nil, err
		}
	}

	for _, conn := range cfg.Connections {
		if _, err := mapGraph.AddConnection(conn.Location1, conn.Location2, conn.Length, conn.Color); err != nil {
			return nil, err
		}
	}

	mapGraph.ApplyNodeParameters(cfg.NodeParams)
	mapGraph.ApplyEdgeParameters(cfg.EdgeParams)

	return mapGraph, nil
}
