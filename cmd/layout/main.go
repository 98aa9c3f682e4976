// cmd/layout/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/config"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/graph"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/render"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/validation"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "map.json", "Path to map configuration file")
	createDefault := flag.Bool("default", false, "Create default map configuration file")
	outPath := flag.String("out", "layout.json", "Path to write the layout result")
	iterations := flag.Int("iterations", 0, "Override the configured iteration count")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default map configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default map configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var mapConfig *config.MapConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Map configuration file not found, using default map",
			"config_path", *configPath,
		)
		mapConfig = config.DefaultConfig()
	} else {
		mapConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load map configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(mapConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if err := validation.ValidateMapConfig(mapConfig); err != nil {
		logger.Error(ctx, "Invalid map configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	mapGraph, err := buildGraph(mapConfig)
	if err != nil {
		logger.Error(ctx, "Failed to build particle graph", err)
		os.Exit(1)
	}

	ticks := mapConfig.Simulation.Iterations
	if *iterations > 0 {
		ticks = *iterations
	}

	logger.Info(ctx, "Running layout simulation",
		"map_name", mapConfig.Name,
		"particles", len(mapGraph.Particles()),
		"iterations", ticks,
		"time_step", mapConfig.Simulation.TimeStep,
	)

	if err := mapGraph.Run(ticks, mapConfig.Simulation.TimeStep); err != nil {
		logger.Error(ctx, "Layout simulation failed", err)
		os.Exit(1)
	}

	// Draw the final state once so headless runs still exercise the
	// render path at debug log level.
	mapGraph.DrawAll(render.NewNullRenderer())

	if err := writeSnapshot(mapGraph, *outPath); err != nil {
		logger.Error(ctx, "Failed to write layout result", err,
			"out_path", *outPath,
		)
		os.Exit(1)
	}

	logger.Info(ctx, "Layout written",
		"out_path", *outPath,
	)
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

// writeSnapshot serializes all particle attributes as indented JSON.
func writeSnapshot(mapGraph *graph.Graph, path string) error {
	data, err := json.MarshalIndent(mapGraph.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
