// Package validation checks map definitions before a particle graph is
// built from them, so structural problems surface as configuration errors
// instead of corrupted-graph failures mid-simulation.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/config"
)

// Limits on map definitions.
const (
	MaxLocationNameLen  = 64
	MaxConnectionLength = 12
	MaxLocations        = 512
)

var (
	// Location names allow letters, digits, spaces and common name
	// punctuation; control characters and separators that would break
	// persisted attribute keys are rejected.
	validLocationNameChars = regexp.MustCompile(`^[\p{L}\p{N} \-'.]+$`)

	// Colors are hex strings like #aa2222 or #fff.
	validHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ValidateMapConfig validates a whole map definition and returns the
// first problem found.
func ValidateMapConfig(cfg *config.MapConfig) error {
	if cfg == nil {
		return fmt.Errorf("map config is nil")
	}
	if len(cfg.Locations) == 0 {
		return fmt.Errorf("map defines no locations")
	}
	if len(cfg.Locations) > MaxLocations {
		return fmt.Errorf("map defines %d locations (max %d)", len(cfg.Locations), MaxLocations)
	}

	names := make(map[string]bool, len(cfg.Locations))
	for _, loc := range cfg.Locations {
		if err := ValidateLocationName(loc.Name); err != nil {
			return err
		}
		if names[loc.Name] {
			return fmt.Errorf("duplicate location name %q", loc.Name)
		}
		names[loc.Name] = true
	}

	for _, conn := range cfg.Connections {
		if err := validateConnection(conn, names); err != nil {
			return err
		}
	}

	if cfg.Interaction.CellSize > 0 && cfg.Interaction.MaxPickRange > cfg.Interaction.CellSize {
		return fmt.Errorf("max pick range %v exceeds cell size %v: picks near cell borders could miss",
			cfg.Interaction.MaxPickRange, cfg.Interaction.CellSize)
	}

	return nil
}

// ValidateLocationName validates a single location name.
func ValidateLocationName(name string) error {
	if name == "" {
		return fmt.Errorf("location name is empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("location name is not valid UTF-8")
	}
	if utf8.RuneCountInString(name) > MaxLocationNameLen {
		return fmt.Errorf("location name %q too long (max %d characters)", name, MaxLocationNameLen)
	}
	if !validLocationNameChars.MatchString(name) {
		return fmt.Errorf("location name %q contains invalid characters", name)
	}
	return nil
}

func validateConnection(conn config.ConnectionConfig, names map[string]bool) error {
	if !names[conn.Location1] {
		return fmt.Errorf("connection %s-%s: unknown location %q", conn.Location1, conn.Location2, conn.Location1)
	}
	if !names[conn.Location2] {
		return fmt.Errorf("connection %s-%s: unknown location %q", conn.Location1, conn.Location2, conn.Location2)
	}
	if conn.Location1 == conn.Location2 {
		return fmt.Errorf("connection %s-%s connects a location to itself", conn.Location1, conn.Location2)
	}
	if conn.Length < 1 || conn.Length > MaxConnectionLength {
		return fmt.Errorf("connection %s-%s: length %d out of range [1, %d]",
			conn.Location1, conn.Location2, conn.Length, MaxConnectionLength)
	}
	if conn.Color != "" && !validHexColor.MatchString(conn.Color) {
		return fmt.Errorf("connection %s-%s: invalid color %q", conn.Location1, conn.Location2, conn.Color)
	}
	return nil
}
