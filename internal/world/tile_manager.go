package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileData describes one tile kind from the tile config file.
type TileData struct {
	Name     string `yaml:"name"`
	Letter   string `yaml:"letter"`
	Walkable bool   `yaml:"walkable"`
	MoveCost int    `yaml:"move_cost"`
	Color    string `yaml:"color"`
}

type tileFile struct {
	Tiles map[string]TileData `yaml:"tiles"`
}

// TileManager resolves map letters to tile data and occupancy costs.
type TileManager struct {
	tiles       map[string]*TileData
	letterToKey map[rune]string
}

// NewTileManager creates an empty tile manager.
func NewTileManager() *TileManager {
	return &TileManager{
		tiles:       make(map[string]*TileData),
		letterToKey: make(map[rune]string),
	}
}

// LoadTileConfig loads tile definitions from a YAML file, replacing any
// previously loaded set.
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var parsed tileFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tiles := make(map[string]*TileData, len(parsed.Tiles))
	letterToKey := make(map[rune]string, len(parsed.Tiles))
	for key, tile := range parsed.Tiles {
		tileCopy := tile
		tiles[key] = &tileCopy

		letters := []rune(tile.Letter)
		if len(letters) != 1 {
			return fmt.Errorf("tile %q: letter must be a single rune, got %q", key, tile.Letter)
		}
		if other, taken := letterToKey[letters[0]]; taken {
			return fmt.Errorf("tile %q: letter %q already used by %q", key, tile.Letter, other)
		}
		if tile.MoveCost < 0 || tile.MoveCost > 255 {
			return fmt.Errorf("tile %q: move_cost %d out of range", key, tile.MoveCost)
		}
		letterToKey[letters[0]] = key
	}

	tm.tiles = tiles
	tm.letterToKey = letterToKey
	return nil
}

// ByLetter returns the tile data for a map letter.
func (tm *TileManager) ByLetter(letter rune) (*TileData, bool) {
	key, ok := tm.letterToKey[letter]
	if !ok {
		return nil, false
	}
	return tm.tiles[key], true
}

// ByKey returns the tile data registered under a config key.
func (tm *TileManager) ByKey(key string) (*TileData, bool) {
	tile, ok := tm.tiles[key]
	return tile, ok
}

// ListTiles returns the loaded tile set keyed by config name.
func (tm *TileManager) ListTiles() map[string]*TileData {
	return tm.tiles
}

// MoveCost returns the occupancy cost for a map letter: zero for
// unwalkable or unknown tiles, otherwise at least one.
func (tm *TileManager) MoveCost(letter rune) byte {
	tile, ok := tm.ByLetter(letter)
	if !ok || !tile.Walkable {
		return 0
	}
	if tile.MoveCost < 1 {
		return 1
	}
	return byte(tile.MoveCost)
}
