package blockfall

import "fmt"

// Grid is the occupancy map of landed pieces.
// Cells hold 0 when empty or the id of the piece that occupies them.
// Rows are stored bottom-up: cells[0] is the floor row.
type Grid struct {
	cols  int
	rows  int
	cells [][]PieceID
}

// NewGrid creates an empty cols×rows grid.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidDimensions, cols, rows)
	}
	g := &Grid{cols: cols, rows: rows, cells: make([][]PieceID, rows)}
	for j := range g.cells {
		g.cells[j] = make([]PieceID, cols)
	}
	return g, nil
}

// Cols returns the grid width.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the grid height.
func (g *Grid) Rows() int {
	return g.rows
}

// InBounds returns true if (i, j) is a cell of the grid.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.cols && j >= 0 && j < g.rows
}

// GetCell returns the value at column i, row j. Out-of-range cells read as
// empty.
func (g *Grid) GetCell(i, j int) PieceID {
	if !g.InBounds(i, j) {
		return 0
	}
	return g.cells[j][i]
}

// SetCell writes v at column i, row j. Out-of-range writes are dropped so
// that a footprint overhanging an edge cannot spill into a neighbouring row.
func (g *Grid) SetCell(i, j int, v PieceID) {
	if !g.InBounds(i, j) {
		return
	}
	g.cells[j][i] = v
}

// Stamp writes v into every cell of the footprint anchored at (i, j).
// Offsets grow downward, grid rows grow upward, hence j-DY.
func (g *Grid) Stamp(i, j int, offsets []Offset, v PieceID) {
	for _, off := range offsets {
		g.SetCell(i+off.DX, j-off.DY, v)
	}
}

// Collides reports whether the footprint anchored at (i, j) would go below
// the floor or overlap an occupied cell. Side walls and the space above the
// top row are not checked; see Blocked.
func (g *Grid) Collides(i, j int, offsets []Offset) bool {
	for _, off := range offsets {
		ci, cj := i+off.DX, j-off.DY
		if cj < 0 {
			return true
		}
		if g.GetCell(ci, cj) != 0 {
			return true
		}
	}
	return false
}

// Blocked is Collides plus the side walls: any cell left of column 0 or
// right of the last column is blocked. The game hands this to piece moves
// and rotations so horizontal limits are enforced in one place.
func (g *Grid) Blocked(i, j int, offsets []Offset) bool {
	for _, off := range offsets {
		ci := i + off.DX
		if ci < 0 || ci >= g.cols {
			return true
		}
	}
	return g.Collides(i, j, offsets)
}

// ShiftDown drops the floor row and adds an empty row at the top.
func (g *Grid) ShiftDown() {
	g.RemoveRow(0)
}

// RemoveRow deletes row j; every row above moves down by one and an empty
// row is added at the top. Out-of-range rows are ignored.
func (g *Grid) RemoveRow(j int) {
	if j < 0 || j >= g.rows {
		return
	}
	removed := g.cells[j]
	copy(g.cells[j:], g.cells[j+1:])
	clear(removed)
	g.cells[g.rows-1] = removed
}

// RowFull reports whether every cell of row j is occupied.
func (g *Grid) RowFull(j int) bool {
	if j < 0 || j >= g.rows {
		return false
	}
	for _, v := range g.cells[j] {
		if v == 0 {
			return false
		}
	}
	return true
}

// FindFullRows returns the indices of fully occupied rows, lowest first.
func FindFullRows(g *Grid) []int {
	var full []int
	for j := 0; j < g.rows; j++ {
		if g.RowFull(j) {
			full = append(full, j)
		}
	}
	return full
}

// ClearFullRows removes every full row and returns the removed indices as
// they were before removal, lowest first. Rows are removed from the highest
// index down so that the indices still to be removed are not shifted.
func (g *Grid) ClearFullRows() []int {
	full := FindFullRows(g)
	for k := len(full) - 1; k >= 0; k-- {
		g.RemoveRow(full[k])
	}
	return full
}

// OccupiedCount returns the number of non-empty cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{cols: g.cols, rows: g.rows, cells: make([][]PieceID, g.rows)}
	for j, row := range g.cells {
		c.cells[j] = append([]PieceID(nil), row...)
	}
	return c
}
