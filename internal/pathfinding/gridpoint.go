package pathfinding

import "math"

// GridPoint is an integer cell coordinate on a room's occupancy grid.
// It is a value type: equality and map keys work structurally.
type GridPoint struct {
	Row int
	Col int
}

// Hash packs the coordinate into a single deterministic integer. Rooms
// never approach 65k tiles per axis, so row and column pack cleanly.
func (p GridPoint) Hash() int {
	return p.Row<<16 | p.Col
}

// Distance returns the Euclidean distance to other, rounded to the
// nearest integer. The search uses it as its heuristic.
func (p GridPoint) Distance(other GridPoint) int {
	dr := float64(p.Row - other.Row)
	dc := float64(p.Col - other.Col)
	return int(math.Round(math.Hypot(dr, dc)))
}

// Path is an ordered sequence of grid waypoints; the first element is the
// start cell and the last is the destination. An empty Path means no
// route exists and is a normal result, not an error.
type Path []GridPoint

// Length returns the geometric length of the path: the sum of the
// straight segment lengths between consecutive waypoints, in tile units.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		dr := float64(p[i].Row - p[i-1].Row)
		dc := float64(p[i].Col - p[i-1].Col)
		total += math.Hypot(dr, dc)
	}
	return total
}
