package blockfall

import (
	"github.com/vovakirdan/blockfall/internal/core"
)

// palette is indexed by piece id modulo its length.
var palette = []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue}

// ColorFor returns the display color of a piece id. It depends only on the
// id, so a grid cell's color can be found without the piece itself.
func ColorFor(id PieceID) core.Color {
	return palette[id%PieceID(len(palette))]
}

// PieceSet is the id→piece index of one game session. The grid stores ids;
// rendering resolves them here.
type PieceSet struct {
	byID  map[PieceID]*Piece
	order []PieceID
}

// NewPieceSet creates an empty set.
func NewPieceSet() *PieceSet {
	return &PieceSet{byID: make(map[PieceID]*Piece)}
}

// Add registers a piece. Adding the same piece twice is a no-op.
func (s *PieceSet) Add(p *Piece) {
	if _, ok := s.byID[p.ID()]; ok {
		return
	}
	s.byID[p.ID()] = p
	s.order = append(s.order, p.ID())
}

// Get returns the piece with the given id.
func (s *PieceSet) Get(id PieceID) (*Piece, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Len returns the number of pieces created in this session.
func (s *PieceSet) Len() int {
	return len(s.order)
}

// Placed returns how many pieces of the session have landed.
func (s *PieceSet) Placed() int {
	n := 0
	for _, p := range s.byID {
		if p.IsPlaced() {
			n++
		}
	}
	return n
}

// Color returns the color of a session piece, or ColorDefault for an id the
// session does not know (including the empty id 0).
func (s *PieceSet) Color(id PieceID) core.Color {
	if _, ok := s.byID[id]; !ok {
		return core.ColorDefault
	}
	return ColorFor(id)
}

// Verify checks that every occupied cell of g belongs to a placed piece of
// this set and returns the first offending cell.
func (s *PieceSet) Verify(g *Grid) (col, row int, ok bool) {
	for j := 0; j < g.Rows(); j++ {
		for i := 0; i < g.Cols(); i++ {
			id := g.GetCell(i, j)
			if id == 0 {
				continue
			}
			p, found := s.byID[id]
			if !found || !p.IsPlaced() {
				return i, j, false
			}
		}
	}
	return 0, 0, true
}
