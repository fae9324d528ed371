package blockfall

import (
	"sync/atomic"

	"github.com/vovakirdan/blockfall/internal/core"
)

// PieceID identifies a piece for the lifetime of the process.
// Zero is never assigned; grid cells use it to mean "empty".
type PieceID uint64

// lastPieceID is shared by every session in the process (SSH sessions run
// concurrently), so ids stay unique and increasing across games.
var lastPieceID atomic.Uint64

func nextPieceID() PieceID {
	return PieceID(lastPieceID.Add(1))
}

// CollisionFunc reports whether placing offsets at grid (col, row) would be
// illegal. Pieces never look at grid state directly; the game injects the
// grid's predicate.
type CollisionFunc func(col, row int, offsets []Offset) bool

// Bounds is an axis-aligned rectangle in render space.
type Bounds struct {
	X1, Y1 float64 // top-left
	X2, Y2 float64 // bottom-right
}

// Piece is a falling block. Its anchor is the top-left corner of the
// reference cell in render space.
// Once placed a piece is frozen: every mutator becomes a no-op.
type Piece struct {
	id     PieceID
	kind   Kind
	field  Field
	x, y   float64
	orient Orientation
	placed bool
}

// NewPiece creates a piece of the given kind anchored at (x, y).
func NewPiece(field Field, x, y float64, kind Kind) *Piece {
	return &Piece{
		id:    nextPieceID(),
		kind:  kind,
		field: field,
		x:     x,
		y:     y,
	}
}

// ID returns the piece id.
func (p *Piece) ID() PieceID {
	return p.id
}

// Kind returns the piece kind.
func (p *Piece) Kind() Kind {
	return p.kind
}

// Color returns the display color, derived from the id.
func (p *Piece) Color() core.Color {
	return ColorFor(p.id)
}

// Orientation returns the current rotation state.
func (p *Piece) Orientation() Orientation {
	return p.orient
}

// IsPlaced reports whether the piece has landed.
func (p *Piece) IsPlaced() bool {
	return p.placed
}

// Position returns the render-space anchor.
func (p *Piece) Position() (x, y float64) {
	return p.x, p.y
}

// GridPosition returns the grid cell of the anchor.
func (p *Piece) GridPosition() (col, row int) {
	return p.field.ToGrid(p.x, p.y)
}

// ShapeOffsets returns the footprint at the current orientation.
func (p *Piece) ShapeOffsets() []Offset {
	return ShapeOffsets(p.kind, p.orient)
}

// OffsetsAt returns the footprint at any orientation without rotating.
func (p *Piece) OffsetsAt(o Orientation) []Offset {
	return ShapeOffsets(p.kind, o)
}

// MarkPlaced freezes the piece. Calling it again has no effect.
func (p *Piece) MarkPlaced() {
	p.placed = true
}

// Move translates the piece without any collision check. Gravity uses this;
// the game's landing probe runs before every fall step.
func (p *Piece) Move(dx, dy float64) {
	if p.placed {
		return
	}
	p.x += dx
	p.y += dy
}

// MoveWithCollision translates the piece only if the footprint at the new
// position does not collide. It reports whether the move was committed; a
// rejected move leaves the piece exactly where it was.
func (p *Piece) MoveWithCollision(dx, dy float64, collides CollisionFunc) bool {
	if p.placed {
		return false
	}
	nx, ny := p.x+dx, p.y+dy
	col, row := p.field.ToGrid(nx, ny)
	if collides(col, row, p.ShapeOffsets()) {
		return false
	}
	p.x, p.y = nx, ny
	return true
}

// RotateCW turns the piece a quarter turn clockwise if the next
// orientation's footprint is free at the current position. It reports
// whether the rotation was committed.
func (p *Piece) RotateCW(collides CollisionFunc) bool {
	if p.placed {
		return false
	}
	next := p.orient.Next()
	col, row := p.field.ToGrid(p.x, p.y)
	if collides(col, row, p.OffsetsAt(next)) {
		return false
	}
	p.orient = next
	return true
}

// Bounds returns the render-space rectangle enclosing the anchor cell and
// every occupied cell at the current orientation.
func (p *Piece) Bounds() Bounds {
	w, h := p.field.CellW, p.field.CellH
	b := Bounds{X1: p.x, Y1: p.y, X2: p.x + w, Y2: p.y + h}

	for _, off := range p.ShapeOffsets() {
		x1 := p.x + float64(off.DX)*w
		y1 := p.y + float64(off.DY)*h
		b.X1 = min(b.X1, x1)
		b.Y1 = min(b.Y1, y1)
		b.X2 = max(b.X2, x1+w)
		b.Y2 = max(b.Y2, y1+h)
	}
	return b
}
