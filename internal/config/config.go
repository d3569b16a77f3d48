// Package config provides the runtime configuration of the raycaster demo.
// Values are loaded from a JSON file layered over the defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/raycaster/internal/core/raycast"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all runtime settings
type Config struct {
	Window   WindowConfig   `json:"window" jsonschema:"description=Window and presentation settings"`
	Level    LevelConfig    `json:"level" jsonschema:"description=Map and texture assets"`
	Movement MovementConfig `json:"movement" jsonschema:"description=Player movement tuning"`
	Casters  CasterConfig   `json:"casters" jsonschema:"description=Which tracer is shown on each side"`
}

// WindowConfig defines how frames are presented
type WindowConfig struct {
	Title     string `json:"title"`
	Scale     int    `json:"scale" jsonschema:"minimum=1,maximum=8,description=Integer upscale factor of each frame"`
	Separator int    `json:"separator" jsonschema:"minimum=0,description=Gap between the two frames in frame pixels"`
	ShowFPS   bool   `json:"show_fps"`
	TPS       int    `json:"tps" jsonschema:"minimum=1,description=Updates per second"`
}

// LevelConfig points at the assets to load. Empty values use the built-in assets.
type LevelConfig struct {
	MapPath  string   `json:"map" jsonschema:"description=JSON level file; empty uses the built-in arena"`
	Textures []string `json:"textures" jsonschema:"description=BMP or PNG files indexed by texture number (0 horizontal hits and 1 vertical hits)"`
}

// MovementConfig defines movement speeds
type MovementConfig struct {
	MoveSpeed float64 `json:"move_speed" jsonschema:"description=Tiles per second"`
	TurnSpeed float64 `json:"turn_speed" jsonschema:"description=Turns per second"`
}

// CasterConfig selects the tracer for each half of the window
type CasterConfig struct {
	Left  raycast.Kind `json:"left" jsonschema:"enum=fixed,enum=float"`
	Right raycast.Kind `json:"right" jsonschema:"enum=fixed,enum=float"`
}

// DefaultConfig returns the default side-by-side settings
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "RayCaster [fixed-point vs. floating-point]",
			Scale:     2,
			Separator: 1,
			ShowFPS:   true,
			TPS:       60,
		},
		Movement: MovementConfig{
			MoveSpeed: 2.0,
			TurnSpeed: 0.25,
		},
		Casters: CasterConfig{
			Left:  raycast.KindFixed,
			Right: raycast.KindFloat,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("%w: window.scale must be 1-8, got %d", ErrInvalidConfig, c.Window.Scale)
	}
	if c.Window.Separator < 0 {
		return fmt.Errorf("%w: window.separator must not be negative", ErrInvalidConfig)
	}
	if c.Window.TPS < 1 {
		return fmt.Errorf("%w: window.tps must be positive", ErrInvalidConfig)
	}
	if c.Movement.MoveSpeed <= 0 || c.Movement.TurnSpeed <= 0 {
		return fmt.Errorf("%w: movement speeds must be positive", ErrInvalidConfig)
	}
	for _, kind := range []raycast.Kind{c.Casters.Left, c.Casters.Right} {
		if !validKind(kind) {
			return fmt.Errorf("%w: unknown caster %q", ErrInvalidConfig, kind)
		}
	}
	return nil
}

func validKind(kind raycast.Kind) bool {
	for _, k := range raycast.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
