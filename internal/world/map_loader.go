package world

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// MapLoader reads text map files into Rooms using the tile registry.
// Map files are one rune per tile; blank lines and lines starting with
// "//" are skipped.
type MapLoader struct {
	tiles    *TileManager
	tileSize float64
}

// startMarker marks the actor start cell in a map file. The cell itself
// is treated as the floor tile.
const startMarker = '@'

// floorLetter is the letter substituted under the start marker.
const floorLetter = '.'

// NewMapLoader creates a map loader bound to a tile registry.
func NewMapLoader(tiles *TileManager, tileSize float64) *MapLoader {
	return &MapLoader{tiles: tiles, tileSize: tileSize}
}

// LoadRoom loads a room from the given map file. All rows must have the
// same number of tiles. Unknown letters are kept impassable with a
// warning rather than failing the whole map.
func (ml *MapLoader) LoadRoom(mapPath string) (*Room, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file %s contains no map data", mapPath)
	}

	width := len([]rune(lines[0]))
	costs := make([][]byte, len(lines))
	letters := make([][]rune, len(lines))
	startRow, startCol := -1, -1

	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("map %s row %d has %d tiles, want %d", mapPath, row+1, len(runes), width)
		}
		costs[row] = make([]byte, width)
		letters[row] = make([]rune, width)
		for col, letter := range runes {
			if letter == startMarker {
				startRow, startCol = row, col
				letter = floorLetter
			}
			if _, known := ml.tiles.ByLetter(letter); !known {
				log.Printf("[MapLoader] %s: unknown tile letter %q at row %d col %d, treating as impassable", mapPath, letter, row, col)
			}
			costs[row][col] = ml.tiles.MoveCost(letter)
			letters[row][col] = letter
		}
	}

	name := strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	room := NewRoom(name, ml.tileSize, costs)
	room.Letters = letters

	if startRow < 0 {
		startRow, startCol = firstWalkable(room)
	}
	room.StartRow = startRow
	room.StartCol = startCol
	return room, nil
}

// firstWalkable scans in row-major order for a walkable cell, falling
// back to the origin on a fully blocked map.
func firstWalkable(r *Room) (int, int) {
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			if r.Walkable(row, col) {
				return row, col
			}
		}
	}
	return 0, 0
}
