package pathfinding

import (
	"container/heap"
)

// CostGrid is the read-only occupancy grid supplied by the room
// collaborator. A cell cost of zero is impassable; any positive value is
// the cost charged for entering that cell.
type CostGrid interface {
	Bounds() (height, width int)
	Cost(row, col int) byte
}

// Finder answers path and line-of-sight queries against one grid
// snapshot. Every query allocates its own bookkeeping and the grid is
// only read, so concurrent queries against an unchanging grid are safe
// without locking.
type Finder struct {
	grid   CostGrid
	height int
	width  int

	tileSize float64
	// Actor width as a fraction of tile size, used by the footprint
	// neighborhood checks during raycasts.
	footprintWidth float64

	// MaxExpansions caps how many cells a single search may finalize.
	// Zero means unbounded. A search that hits the cap reports no route,
	// the same as an exhausted frontier.
	MaxExpansions int
}

// NewFinder creates a Finder for the given grid snapshot. tileSize is in
// room-local units per cell; footprintWidth is the actor's collision
// width expressed as a fraction of tile size.
func NewFinder(grid CostGrid, tileSize, footprintWidth float64) *Finder {
	height, width := grid.Bounds()
	return &Finder{
		grid:           grid,
		height:         height,
		width:          width,
		tileSize:       tileSize,
		footprintWidth: footprintWidth,
	}
}

// openItem is the open-set entry for one cell. Identity is the point
// alone; the cost fields are rewritten in place when the cell is relaxed
// through a cheaper predecessor.
type openItem struct {
	point     GridPoint
	fromStart int
	estimate  int
	index     int
}

// openHeap orders the frontier by estimated total cost, with the packed
// coordinate as a tiebreak so equal-cost cells always pop in the same
// order. The tiebreak keeps the returned path reproducible when several
// optimal routes exist.
type openHeap []*openItem

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	if h[i].estimate != h[j].estimate {
		return h[i].estimate < h[j].estimate
	}
	return h[i].point.Hash() < h[j].point.Hash()
}

func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openHeap) Push(x any) {
	item := x.(*openItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// BuildPath runs an A* search over the occupancy grid and returns the
// raw tile-by-tile route from start to end. Moves are 8-directional;
// diagonals are refused when either flanking orthogonal cell is blocked.
// An empty path means the two cells are not connected.
func (f *Finder) BuildPath(start, end GridPoint) Path {
	if !f.inBounds(start.Row, start.Col) || !f.inBounds(end.Row, end.Col) {
		return nil
	}

	open := make(openHeap, 0, 64)
	inOpen := make(map[GridPoint]*openItem)
	closed := make(map[GridPoint]struct{})
	cameFrom := make(map[GridPoint]GridPoint)

	startItem := &openItem{point: start, estimate: start.Distance(end)}
	heap.Push(&open, startItem)
	inOpen[start] = startItem

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(&open).(*openItem)
		delete(inOpen, cur.point)

		if cur.point == end {
			return reconstructPath(cameFrom, end, start)
		}

		closed[cur.point] = struct{}{}
		expanded++
		if f.MaxExpansions > 0 && expanded >= f.MaxExpansions {
			break
		}

		// Entering a cell is charged once, when that cell is expanded.
		tentative := cur.fromStart + f.cost(cur.point.Row, cur.point.Col)

		for _, n := range f.neighbors(cur.point) {
			if _, done := closed[n]; done {
				continue
			}
			if item, ok := inOpen[n]; ok {
				if tentative < item.fromStart {
					item.fromStart = tentative
					item.estimate = tentative + n.Distance(end)
					cameFrom[n] = cur.point
					heap.Fix(&open, item.index)
				}
				continue
			}
			item := &openItem{
				point:     n,
				fromStart: tentative,
				estimate:  tentative + n.Distance(end),
			}
			heap.Push(&open, item)
			inOpen[n] = item
			cameFrom[n] = cur.point
		}
	}

	return nil
}

// BuildPathLocal is BuildPath with room-local coordinates for both
// endpoints.
func (f *Finder) BuildPathLocal(startX, startY, endX, endY float64) Path {
	return f.BuildPath(f.localToGrid(startX, startY), f.localToGrid(endX, endY))
}

var neighborDirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// neighbors returns the expandable cells around p. Orthogonal neighbors
// qualify whenever in-bounds and passable. A diagonal qualifies only when
// the diagonal cell and both flanking orthogonal cells are passable, so a
// route can never cut through the point where two blocked cells meet.
func (f *Finder) neighbors(p GridPoint) []GridPoint {
	out := make([]GridPoint, 0, 8)
	for _, d := range neighborDirs {
		n := GridPoint{Row: p.Row + d[0], Col: p.Col + d[1]}
		if !f.passable(n.Row, n.Col) {
			continue
		}
		if d[0] != 0 && d[1] != 0 {
			if !f.passable(p.Row+d[0], p.Col) || !f.passable(p.Row, p.Col+d[1]) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func (f *Finder) inBounds(row, col int) bool {
	return row >= 0 && row < f.height && col >= 0 && col < f.width
}

// cost returns the entry cost of a cell, treating out-of-bounds as
// impassable.
func (f *Finder) cost(row, col int) int {
	if !f.inBounds(row, col) {
		return 0
	}
	return int(f.grid.Cost(row, col))
}

func (f *Finder) passable(row, col int) bool {
	return f.cost(row, col) > 0
}

func (f *Finder) localToGrid(x, y float64) GridPoint {
	return GridPoint{Row: int(y / f.tileSize), Col: int(x / f.tileSize)}
}

// localToFractional maps room-local coordinates to fractional grid
// coordinates in which a cell's center sits at its integer index, the
// same convention the sloped casts use for interpolated positions.
func (f *Finder) localToFractional(x, y float64) (row, col float64) {
	return y/f.tileSize - 0.5, x/f.tileSize - 0.5
}

// reconstructPath walks the predecessor links from the goal back to the
// start and reverses the result.
func reconstructPath(cameFrom map[GridPoint]GridPoint, end, start GridPoint) Path {
	path := Path{end}
	cur := end
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
