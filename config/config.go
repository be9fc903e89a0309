// Package config loads editor preferences from a YAML file and process
// settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
)

// MaxHistory is the most undo snapshots the editor keeps.
const MaxHistory = 32

// Colors holds the block palette as "#rrggbb" strings.
type Colors struct {
	Color1    string `yaml:"color1"`
	Color2    string `yaml:"color2"`
	LineColor string `yaml:"line_color"`
}

// Config is the editor preferences file.
type Config struct {
	GridSize         float32    `yaml:"grid_size"`
	GridSnap         bool       `yaml:"grid_snap"`
	AngleSnapDegrees float32    `yaml:"angle_snap_degrees"`
	MinGridPixels    float32    `yaml:"min_grid_pixels"`
	Zoom             float32    `yaml:"zoom"`
	PanSpeed         float32    `yaml:"pan_speed"` // world units per second at zoom 1
	HaloPixels       float32    `yaml:"halo_pixels"`
	GradientPeriod   float32    `yaml:"gradient_period"` // seconds for the fill gradient to sweep from 0 to 1
	HistoryLimit     int        `yaml:"history_limit"`
	BlockSize        [2]float32 `yaml:"block_size"`
	Colors           Colors     `yaml:"colors"`
	KeybindsPath     string     `yaml:"keybinds_path,omitempty"`
	LogPath          string     `yaml:"log_path,omitempty"`
}

// Default returns the built-in preferences.
func Default() *Config {
	return &Config{
		GridSize:         2.5,
		GridSnap:         true,
		AngleSnapDegrees: 15,
		MinGridPixels:    4,
		Zoom:             1,
		PanSpeed:         40,
		HaloPixels:       1,
		GradientPeriod:   2,
		HistoryLimit:     MaxHistory,
		BlockSize:        [2]float32{10, 10},
		Colors: Colors{
			Color1:    "#3a6ea5",
			Color2:    "#9bb7d4",
			LineColor: "#f0f0f0",
		},
		KeybindsPath: "keybinds.txt",
		LogPath:      "shroud-editor.log",
	}
}

// Load reads preferences from path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the preferences as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks ranges and clamps the history limit to MaxHistory.
func (c *Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid_size must be positive, got %v", c.GridSize)
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %v", c.Zoom)
	}
	if c.GradientPeriod <= 0 {
		return fmt.Errorf("gradient_period must be positive, got %v", c.GradientPeriod)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be at least 1, got %d", c.HistoryLimit)
	}
	if c.HistoryLimit > MaxHistory {
		c.HistoryLimit = MaxHistory
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette parses the configured colors.
func (c *Config) Palette() (core.Palette, error) {
	return core.ParsePalette(c.Colors.Color1, c.Colors.Color2, c.Colors.LineColor)
}

// Env holds process settings read from SHROUD_* environment variables.
type Env struct {
	Config   string `envconfig:"CONFIG" default:"shroud-editor.yaml"`
	Verbose  bool   `envconfig:"VERBOSE" default:"false"`
	Keybinds string `envconfig:"KEYBINDS"`
	LogPath  string `envconfig:"LOG"`
	Terminal string `envconfig:"TERMINAL"` // "ascii" or "unicode" overrides detection
}

// LoadEnv reads the SHROUD_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("shroud", &env); err != nil {
		return nil, err
	}
	return &env, nil
}
