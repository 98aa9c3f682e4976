// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// MapConfig contains the configuration for a map layout run: the graph
// definition plus simulation and interaction tuning.
type MapConfig struct {
	Name        string             `json:"name"`
	WorldSize   float64            `json:"worldSize"`
	Locations   []LocationConfig   `json:"locations"`
	Connections []ConnectionConfig `json:"connections"`
	Simulation  SimulationConfig   `json:"simulation"`
	Interaction InteractionConfig  `json:"interaction"`

	// NodeParams and EdgeParams are partial parameter overrides applied
	// to every node/edge particle. Absent keys leave defaults unchanged.
	NodeParams map[string]float64 `json:"nodeParams,omitempty"`
	EdgeParams map[string]float64 `json:"edgeParams,omitempty"`
}

// LocationConfig defines one named location node.
type LocationConfig struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ConnectionConfig defines one connection as a chain of Length edge
// segments between two locations.
type ConnectionConfig struct {
	Location1 string `json:"location1"`
	Location2 string `json:"location2"`
	Length    int    `json:"length"`
	Color     string `json:"color"`
}

// SimulationConfig contains layout-simulation tuning.
type SimulationConfig struct {
	TimeStep   float64 `json:"timeStep"`
	Iterations int     `json:"iterations"`
}

// InteractionConfig contains pointer-interaction tuning.
type InteractionConfig struct {
	// CellSize is the spatial index cell size; it must be no smaller
	// than MaxPickRange to keep the 3x3 neighborhood guarantee.
	CellSize     float64 `json:"cellSize"`
	MaxPickRange float64 `json:"maxPickRange"`
	// ScrollStepDegrees is the rotation applied per scroll notch.
	ScrollStepDegrees float64 `json:"scrollStepDegrees"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *MapConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnvironmentOverrides applies TTRMAP_* environment variables on top
// of a loaded configuration. Unset variables leave values unchanged.
func ApplyEnvironmentOverrides(config *MapConfig) error {
	overrides := []struct {
		key   string
		apply func(v float64)
	}{
		{"TTRMAP_WORLD_SIZE", func(v float64) { config.WorldSize = v }},
		{"TTRMAP_TIME_STEP", func(v float64) { config.Simulation.TimeStep = v }},
		{"TTRMAP_CELL_SIZE", func(v float64) { config.Interaction.CellSize = v }},
		{"TTRMAP_MAX_PICK_RANGE", func(v float64) { config.Interaction.MaxPickRange = v }},
		{"TTRMAP_SCROLL_STEP_DEGREES", func(v float64) { config.Interaction.ScrollStepDegrees = v }},
	}

	for _, o := range overrides {
		raw, ok := os.LookupEnv(o.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", o.key, err)
		}
		o.apply(v)
	}

	if raw, ok := os.LookupEnv("TTRMAP_ITERATIONS"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid value for TTRMAP_ITERATIONS: %w", err)
		}
		config.Simulation.Iterations = v
	}

	return nil
}

// DefaultConfig returns a small example map configuration
func DefaultConfig() *MapConfig {
	return &MapConfig{
		Name:      "example",
		WorldSize: 100,
		Locations: []LocationConfig{
			{Name: "Lisboa", X: 10, Y: 20},
			{Name: "Madrid", X: 25, Y: 25},
			{Name: "Paris", X: 35, Y: 55},
			{Name: "Berlin", X: 55, Y: 65},
		},
		Connections: []ConnectionConfig{
			{Location1: "Lisboa", Location2: "Madrid", Length: 3, Color: "#aa2222"},
			{Location1: "Madrid", Location2: "Paris", Length: 5, Color: "#2222aa"},
			{Location1: "Paris", Location2: "Berlin", Length: 4, Color: "#22aa22"},
		},
		Simulation: SimulationConfig{
			TimeStep:   0.1,
			Iterations: 500,
		},
		Interaction: InteractionConfig{
			CellSize:     5,
			MaxPickRange: 2,
			// One degree per notch, matching typical scroll granularity.
			ScrollStepDegrees: 1,
		},
		NodeParams: map[string]float64{
			"mass":               1,
			"interaction_radius": 3,
		},
		EdgeParams: map[string]float64{
			"mass":      0.1,
			"edge-node": 0.1,
			"edge-edge": 0.1,
		},
	}
}
