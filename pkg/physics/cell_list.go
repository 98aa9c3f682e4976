// pkg/physics/cell_list.go
package physics

import "math"

// CellList is a uniform grid bucketing particle indices by position for
// fast approximate neighborhood queries. It is a broad-phase filter: a
// query may return indices whose particles are not actually nearest, and
// the grid may be stale relative to live particle positions. Staleness
// only degrades hit-test quality; force computations never read the grid.
//
// CellSize must be at least the maximum distance a query needs to see so
// that the 3x3 neighborhood lookup cannot miss the true nearest particle.
type CellList struct {
	origin   Vector2D
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewCellList creates a cell list covering the rectangle spanned by
// origin and origin+(width, height), divided into square cells of the
// given size. Dimensions are clamped to at least one cell.
func NewCellList(origin Vector2D, width, height, cellSize float64) *CellList {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &CellList{
		origin:   origin,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// CellSize returns the edge length of a grid cell.
func (c *CellList) CellSize() float64 {
	return c.cellSize
}

// cellCoords returns the integer cell coordinates containing a position.
func (c *CellList) cellCoords(position Vector2D) (int, int) {
	i := int(math.Floor((position.X - c.origin.X) / c.cellSize))
	j := int(math.Floor((position.Y - c.origin.Y) / c.cellSize))
	return i, j
}

// Insert buckets a particle index by its position. Positions outside the
// grid bounds are ignored; the grid stays a best-effort structure.
func (c *CellList) Insert(index int, position Vector2D) {
	i, j := c.cellCoords(position)
	if i < 0 || j < 0 || i >= c.cols || j >= c.rows {
		return
	}
	cell := j*c.cols + i
	c.cells[cell] = append(c.cells[cell], index)
}

// Clear removes all indices from the grid without deallocating cell memory.
func (c *CellList) Clear() {
	for i := range c.cells {
		c.cells[i] = c.cells[i][:0]
	}
}

// QueryNearby returns the union of particle indices bucketed in the 3x3
// block of cells centered on the cell containing point, clipped to the
// grid bounds. The result may contain false positives but contains the
// true nearest particle whenever it lies within one cell width of point.
func (c *CellList) QueryNearby(point Vector2D) []int {
	ci, cj := c.cellCoords(point)

	var indices []int
	for i := ci - 1; i <= ci+1; i++ {
		for j := cj - 1; j <= cj+1; j++ {
			if i < 0 || j < 0 || i >= c.cols || j >= c.rows {
				continue
			}
			indices = append(indices, c.cells[j*c.cols+i]...)
		}
	}
	return indices
}
