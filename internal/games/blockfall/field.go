package blockfall

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned when a field or grid is constructed with
// non-positive sizes.
var ErrInvalidDimensions = errors.New("blockfall: invalid dimensions")

// Field describes the playfield geometry in both coordinate spaces.
//
// Render space is continuous with the origin at the top-left and y growing
// downward; it includes one boundary cell of margin on every side. Grid
// space is integer with column 0 on the left and row 0 at the bottom, so
// grid rows grow upward while render y grows downward.
//
// All conversions between the two spaces live here.
type Field struct {
	Cols  int
	Rows  int
	CellW float64
	CellH float64
}

// NewField validates and returns a Field.
func NewField(cols, rows int, cellW, cellH float64) (Field, error) {
	if cols <= 0 || rows <= 0 {
		return Field{}, fmt.Errorf("%w: %dx%d cells", ErrInvalidDimensions, cols, rows)
	}
	if cellW <= 0 || cellH <= 0 {
		return Field{}, fmt.Errorf("%w: cell size %gx%g", ErrInvalidDimensions, cellW, cellH)
	}
	return Field{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}, nil
}

// Width is the full render width including the margins.
func (f Field) Width() float64 {
	return float64(f.Cols+2) * f.CellW
}

// Height is the full render height including the margins.
func (f Field) Height() float64 {
	return float64(f.Rows+2) * f.CellH
}

// FloorY is the render y of the line under grid row 0.
func (f Field) FloorY() float64 {
	return f.Height() - f.CellH
}

// ToGrid converts a render-space point to grid (col, row).
//
// For a point exactly on a cell's top-left corner this is the inverse of
// CellOrigin. A point that has sunk part way into the next cell down maps
// to that lower row.
func (f Field) ToGrid(x, y float64) (col, row int) {
	col = int(math.Floor((x - f.CellW) / f.CellW))
	row = int(math.Floor((f.Height()-f.CellH-y)/f.CellH)) - 1
	return col, row
}

// CellOrigin returns the render-space top-left corner of grid cell (col, row).
func (f Field) CellOrigin(col, row int) (x, y float64) {
	x = float64(col+1) * f.CellW
	y = float64(f.Rows-row) * f.CellH
	return x, y
}

// DisplayRow flips a grid row to a row counted from the top of the
// playfield (0 = top row).
func (f Field) DisplayRow(row int) int {
	return f.Rows - 1 - row
}

// SpawnPoint returns the anchor of a new piece: top row, centre column.
func (f Field) SpawnPoint() (x, y float64) {
	return f.CellOrigin(f.Cols/2, f.Rows-1)
}
