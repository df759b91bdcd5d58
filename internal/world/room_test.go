package world

import (
	"math"
	"testing"

	"undermarch/internal/pathfinding"
)

func testRoom() *Room {
	return NewRoom("test", 64.0, [][]byte{
		{1, 1, 0},
		{1, 5, 1},
	})
}

func TestRoomBoundsAndCost(t *testing.T) {
	r := testRoom()
	height, width := r.Bounds()
	if height != 2 || width != 3 {
		t.Fatalf("Bounds() = (%d, %d), want (2, 3)", height, width)
	}
	if got := r.Cost(1, 1); got != 5 {
		t.Errorf("Cost(1,1) = %d, want 5", got)
	}
	if got := r.Cost(0, 2); got != 0 {
		t.Errorf("Cost(0,2) = %d, want 0", got)
	}
	for _, cell := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		if got := r.Cost(cell[0], cell[1]); got != 0 {
			t.Errorf("out-of-bounds Cost(%d,%d) = %d, want 0", cell[0], cell[1], got)
		}
	}
}

func TestRoomSetCost(t *testing.T) {
	r := testRoom()
	r.SetCost(0, 2, 1)
	if !r.Walkable(0, 2) {
		t.Error("SetCost should open the cell")
	}
	// Out-of-bounds writes are silently dropped.
	r.SetCost(5, 5, 1)
}

func TestLocalToGridPoint(t *testing.T) {
	r := testRoom()
	cases := []struct {
		x, y float64
		want pathfinding.GridPoint
	}{
		{0, 0, pathfinding.GridPoint{Row: 0, Col: 0}},
		{63.9, 63.9, pathfinding.GridPoint{Row: 0, Col: 0}},
		{64, 0, pathfinding.GridPoint{Row: 0, Col: 1}},
		{140, 70, pathfinding.GridPoint{Row: 1, Col: 2}},
	}
	for _, tc := range cases {
		if got := r.LocalToGridPoint(tc.x, tc.y); got != tc.want {
			t.Errorf("LocalToGridPoint(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestLocalToFractionalGridPoint(t *testing.T) {
	r := testRoom()

	// A tile center maps exactly onto its integer index.
	cx, cy := r.TileCenter(pathfinding.GridPoint{Row: 1, Col: 2})
	row, col := r.LocalToFractionalGridPoint(cx, cy)
	if math.Abs(row-1) > 1e-9 || math.Abs(col-2) > 1e-9 {
		t.Errorf("center of (1,2) maps to (%v, %v), want (1, 2)", row, col)
	}

	// Halfway between two centers lands on the half coordinate.
	row, col = r.LocalToFractionalGridPoint(64, 64)
	if math.Abs(row-0.5) > 1e-9 || math.Abs(col-0.5) > 1e-9 {
		t.Errorf("boundary corner maps to (%v, %v), want (0.5, 0.5)", row, col)
	}
}

func TestTileCenterRoundTrip(t *testing.T) {
	r := testRoom()
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			p := pathfinding.GridPoint{Row: row, Col: col}
			x, y := r.TileCenter(p)
			if got := r.LocalToGridPoint(x, y); got != p {
				t.Errorf("TileCenter(%v) -> (%v, %v) -> %v", p, x, y, got)
			}
		}
	}
}
