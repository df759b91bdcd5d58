package world

import (
	"undermarch/internal/pathfinding"
)

// Room is one playable area: a rectangular grid of per-tile entry costs
// plus the mapping between room-local coordinates and grid cells. A cost
// of zero marks an impassable tile. Room implements pathfinding.CostGrid.
type Room struct {
	Name     string
	Width    int
	Height   int
	TileSize float64

	// Start cell parsed from the map file's start marker.
	StartRow int
	StartCol int

	// Letters holds the original map runes for file-backed rooms, used
	// only for display. Nil for rooms built directly from cost grids.
	Letters [][]rune

	costs [][]byte
}

// NewRoom wraps a rectangular cost grid. The rows must all have the same
// length; the loader guarantees this for file-backed rooms.
func NewRoom(name string, tileSize float64, costs [][]byte) *Room {
	width := 0
	if len(costs) > 0 {
		width = len(costs[0])
	}
	return &Room{
		Name:     name,
		Width:    width,
		Height:   len(costs),
		TileSize: tileSize,
		costs:    costs,
	}
}

// Bounds implements pathfinding.CostGrid.
func (r *Room) Bounds() (height, width int) {
	return r.Height, r.Width
}

// Cost implements pathfinding.CostGrid. Out-of-bounds cells are
// impassable.
func (r *Room) Cost(row, col int) byte {
	if !r.InBounds(row, col) {
		return 0
	}
	return r.costs[row][col]
}

// SetCost replaces one cell's entry cost. Out-of-bounds writes are
// ignored. The viewer uses this for live wall painting; callers must not
// mutate a room while path queries run against it.
func (r *Room) SetCost(row, col int, cost byte) {
	if r.InBounds(row, col) {
		r.costs[row][col] = cost
	}
}

// InBounds reports whether the cell lies inside the grid.
func (r *Room) InBounds(row, col int) bool {
	return row >= 0 && row < r.Height && col >= 0 && col < r.Width
}

// LocalToGridPoint maps room-local coordinates to the containing cell.
func (r *Room) LocalToGridPoint(x, y float64) pathfinding.GridPoint {
	return pathfinding.GridPoint{Row: int(y / r.TileSize), Col: int(x / r.TileSize)}
}

// LocalToFractionalGridPoint maps room-local coordinates to fractional
// grid coordinates without rounding. A cell's center maps to its integer
// index, so the fractional coordinates interpolate between tile centers.
func (r *Room) LocalToFractionalGridPoint(x, y float64) (row, col float64) {
	return y/r.TileSize - 0.5, x/r.TileSize - 0.5
}

// TileCenter returns the room-local center of a cell.
func (r *Room) TileCenter(p pathfinding.GridPoint) (x, y float64) {
	return (float64(p.Col) + 0.5) * r.TileSize, (float64(p.Row) + 0.5) * r.TileSize
}

// StartPosition returns the room-local center of the start cell.
func (r *Room) StartPosition() (x, y float64) {
	return r.TileCenter(pathfinding.GridPoint{Row: r.StartRow, Col: r.StartCol})
}

// Letter returns the display rune for a cell, or 0 when the room has no
// letter layer.
func (r *Room) Letter(row, col int) rune {
	if r.Letters == nil || !r.InBounds(row, col) {
		return 0
	}
	return r.Letters[row][col]
}

// Walkable reports whether an actor may stand on the cell.
func (r *Room) Walkable(row, col int) bool {
	return r.Cost(row, col) > 0
}
