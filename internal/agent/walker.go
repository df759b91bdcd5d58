package agent

import (
	"math"

	"undermarch/internal/pathfinding"
	"undermarch/internal/world"
)

// Walker moves an actor through a room by following smoothed paths from
// the pathfinder, one waypoint at a time. It owns no shared state: each
// walker plans and follows its own route.
type Walker struct {
	ID string
	X  float64
	Y  float64
	// Speed is in room-local units per Update.
	Speed float64

	room   *world.Room
	finder *pathfinding.Finder

	path      pathfinding.Path
	pathIndex int

	targetX   float64
	targetY   float64
	hasTarget bool
}

// NewWalker places a walker at a room-local position.
func NewWalker(room *world.Room, finder *pathfinding.Finder, x, y, speed float64) *Walker {
	return &Walker{
		room:   room,
		finder: finder,
		X:      x,
		Y:      y,
		Speed:  speed,
	}
}

// SetTarget orders the walker toward a room-local position. Any current
// path is dropped and replanned on the next Update.
func (w *Walker) SetTarget(x, y float64) {
	w.targetX = x
	w.targetY = y
	w.hasTarget = true
	w.path = nil
	w.pathIndex = 0
}

// HasTarget reports whether the walker is still heading somewhere.
func (w *Walker) HasTarget() bool {
	return w.hasTarget
}

// Path returns the route currently being followed. Callers must treat it
// as read-only.
func (w *Walker) Path() pathfinding.Path {
	return w.path
}

// Target returns the room-local position the walker is heading for.
func (w *Walker) Target() (x, y float64, ok bool) {
	return w.targetX, w.targetY, w.hasTarget
}

// Replan drops the current path so the next Update recomputes it. Used
// after the room changes under the walker's feet.
func (w *Walker) Replan() {
	w.path = nil
	w.pathIndex = 0
}

// Update advances the walker one tick and reports whether it moved. An
// unreachable target is dropped, leaving the walker idle.
func (w *Walker) Update() bool {
	if !w.hasTarget {
		return false
	}

	if w.pathIndex >= len(w.path) {
		if !w.replan() {
			w.clearTarget()
			return false
		}
	}

	next := w.path[w.pathIndex]
	targetCenterX, targetCenterY := w.room.TileCenter(next)

	dx := targetCenterX - w.X
	dy := targetCenterY - w.Y
	dist := math.Hypot(dx, dy)

	if dist <= w.Speed {
		w.X = targetCenterX
		w.Y = targetCenterY
		w.pathIndex++
		if w.pathIndex >= len(w.path) {
			w.clearTarget()
		}
		return true
	}

	w.X += dx / dist * w.Speed
	w.Y += dy / dist * w.Speed
	return true
}

// replan asks the pathfinder for a fresh smoothed route to the target.
// It reports false when no route exists or the walker is already in the
// destination cell.
func (w *Walker) replan() bool {
	w.path = w.finder.BuildPathSmoothedLocal(w.X, w.Y, w.targetX, w.targetY)
	w.pathIndex = 0
	if len(w.path) == 0 {
		return false
	}
	if w.path[0] == w.room.LocalToGridPoint(w.X, w.Y) {
		w.pathIndex = 1
	}
	return w.pathIndex < len(w.path)
}

func (w *Walker) clearTarget() {
	w.hasTarget = false
	w.path = nil
	w.pathIndex = 0
}
