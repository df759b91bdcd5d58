package pathfinding

// BuildPathSmoothed runs BuildPath and collapses waypoints that a
// straight, cost-aware line of sight can skip, leaving long segments in
// place of tile-by-tile steps.
func (f *Finder) BuildPathSmoothed(start, end GridPoint) Path {
	return f.Smooth(f.BuildPath(start, end))
}

// BuildPathSmoothedLocal is BuildPathSmoothed with room-local coordinates
// for both endpoints.
func (f *Finder) BuildPathSmoothedLocal(startX, startY, endX, endY float64) Path {
	return f.Smooth(f.BuildPathLocal(startX, startY, endX, endY))
}

// Smooth removes every intermediate waypoint whose two neighbors can see
// each other directly. While the waypoint two ahead of i is reachable the
// one in between is dropped and i is retried, so whole straight runs
// collapse in one pass. The first and last waypoints are never touched
// and the result is never longer than the input.
func (f *Finder) Smooth(path Path) Path {
	if len(path) < 3 {
		return path
	}
	pts := append(Path(nil), path...)
	i := 0
	for i < len(pts)-2 {
		if f.Raycast(pts[i], pts[i+2], true) {
			pts = append(pts[:i+1], pts[i+2:]...)
		} else {
			i++
		}
	}
	return pts
}
