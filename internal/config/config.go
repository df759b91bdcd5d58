package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	World       WorldConfig       `yaml:"world"`
	Movement    MovementConfig    `yaml:"movement"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Assets      AssetsConfig      `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type WorldConfig struct {
	TileSize int `yaml:"tile_size"`
}

type MovementConfig struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type PathfindingConfig struct {
	// Actor collision width as a fraction of tile size, used by the
	// line-of-sight footprint checks.
	FootprintWidth float64 `yaml:"footprint_width"`
	// Cap on cells a single search may finalize; 0 means unbounded.
	MaxExpansions int `yaml:"max_expansions"`
}

type AssetsConfig struct {
	TilesFile string `yaml:"tiles_file"`
	MapsDir   string `yaml:"maps_dir"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML file and fills in
// defaults for anything the file leaves unset.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	GlobalConfig = &config
	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

func (c *Config) applyDefaults() {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = 1024
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = 768
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "Undermarch"
	}
	if c.World.TileSize <= 0 {
		c.World.TileSize = 64
	}
	if c.Movement.MoveSpeed <= 0 {
		c.Movement.MoveSpeed = 4.0
	}
	if c.Pathfinding.FootprintWidth <= 0 {
		c.Pathfinding.FootprintWidth = 0.35
	}
	if c.Assets.TilesFile == "" {
		c.Assets.TilesFile = "assets/tiles.yaml"
	}
	if c.Assets.MapsDir == "" {
		c.Assets.MapsDir = "assets/maps"
	}
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}
