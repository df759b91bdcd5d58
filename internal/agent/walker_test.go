package agent

import (
	"math"
	"testing"

	"undermarch/internal/pathfinding"
	"undermarch/internal/world"
)

// testRoom builds a 5x5 room with a wall column splitting it, open at the
// bottom row, plus a sealed cell in the corner.
//
//	. . # . .
//	. . # . .
//	. . # . .
//	. . # . #
//	. . . . #
func testRoom(t *testing.T) (*world.Room, *pathfinding.Finder) {
	t.Helper()
	costs := [][]byte{
		{1, 1, 0, 1, 1},
		{1, 1, 0, 1, 1},
		{1, 1, 0, 1, 1},
		{1, 1, 0, 1, 0},
		{1, 1, 1, 1, 0},
	}
	room := world.NewRoom("test", 64.0, costs)
	finder := pathfinding.NewFinder(room, 64.0, 0.35)
	return room, finder
}

func TestWalkerArrives(t *testing.T) {
	room, finder := testRoom(t)
	startX, startY := room.TileCenter(pathfinding.GridPoint{Row: 0, Col: 0})
	w := NewWalker(room, finder, startX, startY, 4.0)

	goalX, goalY := room.TileCenter(pathfinding.GridPoint{Row: 0, Col: 4})
	w.SetTarget(goalX, goalY)
	if !w.HasTarget() {
		t.Fatal("walker should have a target after SetTarget")
	}

	for tick := 0; tick < 10000 && w.HasTarget(); tick++ {
		w.Update()
	}
	if w.HasTarget() {
		t.Fatal("walker never arrived")
	}
	if math.Hypot(w.X-goalX, w.Y-goalY) > 1e-9 {
		t.Errorf("walker stopped at (%.2f, %.2f), want (%.2f, %.2f)", w.X, w.Y, goalX, goalY)
	}
}

func TestWalkerUnreachableTarget(t *testing.T) {
	room, finder := testRoom(t)
	startX, startY := room.TileCenter(pathfinding.GridPoint{Row: 0, Col: 0})
	w := NewWalker(room, finder, startX, startY, 4.0)

	// The bottom-right corner is solid wall.
	wallX, wallY := room.TileCenter(pathfinding.GridPoint{Row: 4, Col: 4})
	w.SetTarget(wallX, wallY)

	if w.Update() {
		t.Error("Update should report no movement for an unreachable target")
	}
	if w.HasTarget() {
		t.Error("an unreachable target must be dropped")
	}
	if w.X != startX || w.Y != startY {
		t.Errorf("walker moved to (%.2f, %.2f) despite having no route", w.X, w.Y)
	}
}

func TestWalkerTargetOwnCell(t *testing.T) {
	room, finder := testRoom(t)
	startX, startY := room.TileCenter(pathfinding.GridPoint{Row: 2, Col: 1})
	w := NewWalker(room, finder, startX, startY, 4.0)

	w.SetTarget(startX, startY)
	w.Update()
	if w.HasTarget() {
		t.Error("targeting the current cell should resolve immediately")
	}
}

func TestWalkerReplanAfterRoomChange(t *testing.T) {
	room, finder := testRoom(t)
	startX, startY := room.TileCenter(pathfinding.GridPoint{Row: 0, Col: 0})
	w := NewWalker(room, finder, startX, startY, 4.0)

	goalX, goalY := room.TileCenter(pathfinding.GridPoint{Row: 0, Col: 4})
	w.SetTarget(goalX, goalY)
	w.Update()
	if len(w.Path()) == 0 {
		t.Fatal("walker should have planned a route")
	}

	// Seal the only gap in the wall and force a replan.
	room.SetCost(4, 2, 0)
	w.Replan()

	if w.Update() {
		t.Error("Update should report no movement once the route is sealed")
	}
	if w.HasTarget() {
		t.Error("target must be dropped when the route disappears")
	}
}

func TestWalkerStepSize(t *testing.T) {
	room, finder := testRoom(t)
	startX, startY := room.TileCenter(pathfinding.GridPoint{Row: 4, Col: 0})
	w := NewWalker(room, finder, startX, startY, 4.0)

	goalX, goalY := room.TileCenter(pathfinding.GridPoint{Row: 4, Col: 3})
	w.SetTarget(goalX, goalY)

	prevX, prevY := w.X, w.Y
	for w.HasTarget() {
		w.Update()
		step := math.Hypot(w.X-prevX, w.Y-prevY)
		if step > w.Speed+1e-9 {
			t.Fatalf("step of %.4f exceeds speed %.4f", step, w.Speed)
		}
		prevX, prevY = w.X, w.Y
	}
}
