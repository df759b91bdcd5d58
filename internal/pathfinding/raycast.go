package pathfinding

import (
	"math"

	"undermarch/internal/mathutil"
)

// Raycast reports whether an actor can walk a straight line from start to
// end. With considerTravelCost enabled the line also refuses to cross any
// cell more expensive than the costlier of the two endpoints, so a
// shortcut never drags the actor through worse terrain than it already
// touches. With it disabled only impassable cells block.
func (f *Finder) Raycast(start, end GridPoint, considerTravelCost bool) bool {
	if start == end {
		return true
	}

	ceiling := f.costCeiling(start, end, considerTravelCost)
	dRow := end.Row - start.Row
	dCol := end.Col - start.Col

	switch {
	case dRow == 0 || dCol == 0:
		return f.castAxisAligned(start, end, ceiling)
	case mathutil.IntAbs(dRow) == mathutil.IntAbs(dCol):
		return f.castDiagonal(start, end, ceiling)
	default:
		return f.castSloped(start, end, ceiling)
	}
}

// RaycastLocal is the continuous-space variant of Raycast: both endpoints
// are room-local coordinates and are sampled at fractional grid
// positions. Moves shorter than one tile are always unobstructed.
func (f *Finder) RaycastLocal(x1, y1, x2, y2 float64, considerTravelCost bool) bool {
	dist := math.Hypot(x2-x1, y2-y1)
	if dist <= f.tileSize {
		return true
	}

	ceiling := f.costCeiling(f.localToGrid(x1, y1), f.localToGrid(x2, y2), considerTravelCost)

	row1, col1 := f.localToFractional(x1, y1)
	row2, col2 := f.localToFractional(x2, y2)

	// Consecutive samples sit no more than half a tile apart.
	samples := int(math.Ceil(dist/(f.tileSize/2))) + 1
	if samples < 3 {
		samples = 3
	}

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		row := row1 + (row2-row1)*t
		col := col1 + (col2-col1)*t
		if !f.footprintClear(row, col, ceiling) {
			return false
		}
	}
	return true
}

// costCeiling returns the highest cell cost a ray may cross. Without cost
// awareness the ceiling is the maximum byte value, which only lets
// impassable cells block.
func (f *Finder) costCeiling(start, end GridPoint, considerTravelCost bool) int {
	if !considerTravelCost {
		return math.MaxUint8
	}
	c := f.cost(start.Row, start.Col)
	if e := f.cost(end.Row, end.Col); e > c {
		c = e
	}
	return c
}

// traversable reports whether a cell is inside the grid, passable, and
// within the cost ceiling.
func (f *Finder) traversable(row, col, ceiling int) bool {
	c := f.cost(row, col)
	return c > 0 && c <= ceiling
}

func (f *Finder) castAxisAligned(start, end GridPoint, ceiling int) bool {
	stepRow := mathutil.IntSign(end.Row - start.Row)
	stepCol := mathutil.IntSign(end.Col - start.Col)
	cur := start
	for {
		if !f.traversable(cur.Row, cur.Col, ceiling) {
			return false
		}
		if cur == end {
			return true
		}
		cur.Row += stepRow
		cur.Col += stepCol
	}
}

// castDiagonal advances one cell diagonally at a time. Each step
// validates the destination cell and the two cells the footprint brushes
// past, the same corner rule the search uses for diagonal moves.
func (f *Finder) castDiagonal(start, end GridPoint, ceiling int) bool {
	stepRow := mathutil.IntSign(end.Row - start.Row)
	stepCol := mathutil.IntSign(end.Col - start.Col)
	cur := start
	for cur != end {
		if !f.traversable(cur.Row+stepRow, cur.Col+stepCol, ceiling) ||
			!f.traversable(cur.Row+stepRow, cur.Col, ceiling) ||
			!f.traversable(cur.Row, cur.Col+stepCol, ceiling) {
			return false
		}
		cur.Row += stepRow
		cur.Col += stepCol
	}
	return true
}

// castSloped walks the dominant axis in half-cell increments, tracking
// the exact fractional position on the minor axis, and validates the
// footprint neighborhood at every sample. Oversampling by half cells
// keeps the discrete check close to the continuous motion it stands for.
func (f *Finder) castSloped(start, end GridPoint, ceiling int) bool {
	dRow := end.Row - start.Row
	dCol := end.Col - start.Col

	if mathutil.IntAbs(dCol) > mathutil.IntAbs(dRow) {
		slope := float64(dRow) / float64(dCol)
		steps := mathutil.IntAbs(dCol) * 2
		stepCol := float64(mathutil.IntSign(dCol)) * 0.5
		for i := 0; i <= steps; i++ {
			col := float64(start.Col) + stepCol*float64(i)
			row := float64(start.Row) + (col-float64(start.Col))*slope
			if !f.footprintClear(row, col, ceiling) {
				return false
			}
		}
		return true
	}

	slope := float64(dCol) / float64(dRow)
	steps := mathutil.IntAbs(dRow) * 2
	stepRow := float64(mathutil.IntSign(dRow)) * 0.5
	for i := 0; i <= steps; i++ {
		row := float64(start.Row) + stepRow*float64(i)
		col := float64(start.Col) + (row-float64(start.Row))*slope
		if !f.footprintClear(row, col, ceiling) {
			return false
		}
	}
	return true
}

// footprintClear checks every cell the actor's body can overlap while
// standing at the fractional grid position (row, col). The neighborhood
// is the cross product of the per-axis candidate cells: one, two, or
// four cells in total.
func (f *Finder) footprintClear(row, col float64, ceiling int) bool {
	rowCells, rowN := f.axisCells(row)
	colCells, colN := f.axisCells(col)
	for i := 0; i < rowN; i++ {
		for j := 0; j < colN; j++ {
			if !f.traversable(rowCells[i], colCells[j], ceiling) {
				return false
			}
		}
	}
	return true
}

// axisCells returns the cell indices the footprint can touch along one
// axis at fractional coordinate v. When the offset from the nearest cell
// exceeds half the footprint width the body stays inside the rounded
// cell; otherwise it straddles the boundary and both flanking cells are
// candidates. An offset exactly at half width counts as straddling.
func (f *Finder) axisCells(v float64) (cells [2]int, n int) {
	nearest := math.Round(v)
	if math.Abs(v-nearest) > f.footprintWidth/2 {
		cells[0] = int(nearest)
		return cells, 1
	}
	lo := int(math.Floor(v))
	hi := int(math.Ceil(v))
	cells[0] = lo
	if hi == lo {
		return cells, 1
	}
	cells[1] = hi
	return cells, 2
}
