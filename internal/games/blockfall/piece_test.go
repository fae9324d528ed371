package blockfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func collidesAlways(int, int, []Offset) bool { return true }

func collidesNever(int, int, []Offset) bool { return false }

func TestPieceIDsUniqueAndIncreasing(t *testing.T) {
	f := defaultField(t)
	var prev PieceID
	seen := make(map[PieceID]bool)
	for i := 0; i < 50; i++ {
		p := NewPiece(f, 0, 0, Kinds[i%len(Kinds)])
		require.NotZero(t, p.ID())
		require.Greater(t, p.ID(), prev)
		require.False(t, seen[p.ID()])
		seen[p.ID()] = true
		prev = p.ID()
	}
}

func TestPieceColorFromID(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 0, 0, KindL)
	assert.Equal(t, ColorFor(p.ID()), p.Color())

	assert.Equal(t, core.ColorRed, ColorFor(3))
	assert.Equal(t, core.ColorGreen, ColorFor(4))
	assert.Equal(t, core.ColorBlue, ColorFor(5))
}

func TestPieceMove(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 30, KindI)

	p.Move(0, 2)
	p.Move(30, 0)

	x, y := p.Position()
	assert.Equal(t, 180.0, x)
	assert.Equal(t, 32.0, y)
}

func TestPieceMoveWithCollisionRejected(t *testing.T) {
	f := defaultField(t)

	tests := []struct {
		dx, dy float64
	}{
		{30, 0},
		{-30, 0},
		{0, 2},
		{-90, 450},
	}
	for _, tt := range tests {
		p := NewPiece(f, 150, 30, KindL)
		ok := p.MoveWithCollision(tt.dx, tt.dy, collidesAlways)

		assert.False(t, ok)
		x, y := p.Position()
		if x != 150 || y != 30 {
			t.Errorf("MoveWithCollision(%v, %v) rejected moved piece to (%v, %v)", tt.dx, tt.dy, x, y)
		}
	}
}

func TestPieceMoveWithCollisionProbesTarget(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 30, KindI)

	var gotCol, gotRow int
	var gotOffsets []Offset
	ok := p.MoveWithCollision(30, 0, func(col, row int, offsets []Offset) bool {
		gotCol, gotRow, gotOffsets = col, row, offsets
		return false
	})

	require.True(t, ok)
	assert.Equal(t, 5, gotCol)
	assert.Equal(t, 17, gotRow)
	assert.Equal(t, ShapeOffsets(KindI, 0), gotOffsets)
	x, _ := p.Position()
	assert.Equal(t, 180.0, x)
}

func TestPieceMoveWithCollisionAgainstGrid(t *testing.T) {
	f := defaultField(t)
	g, err := NewGrid(f.Cols, f.Rows)
	require.NoError(t, err)
	g.SetCell(6, 17, 99)

	p := NewPiece(f, 150, 30, KindI) // cells 3..5 on row 17

	assert.False(t, p.MoveWithCollision(30, 0, g.Blocked))
	assert.True(t, p.MoveWithCollision(-30, 0, g.Blocked))
	assert.True(t, p.MoveWithCollision(-30, 0, g.Blocked))
	assert.True(t, p.MoveWithCollision(-30, 0, g.Blocked))
	assert.False(t, p.MoveWithCollision(-30, 0, g.Blocked), "left wall")

	col, _ := p.GridPosition()
	assert.Equal(t, 1, col)
}

func TestPieceRotateCycles(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 300, KindL)

	expected := []Orientation{1, 2, 3, 0, 1, 2, 3, 0}
	for i, want := range expected {
		require.True(t, p.RotateCW(collidesNever))
		if got := p.Orientation(); got != want {
			t.Fatalf("rotation %d: orientation = %d, expected %d", i+1, got, want)
		}
	}
}

func TestPieceRotateChecksNextOrientation(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 300, KindI)

	var probed []Offset
	ok := p.RotateCW(func(col, row int, offsets []Offset) bool {
		probed = offsets
		return true
	})

	assert.False(t, ok)
	assert.Equal(t, Orientation(0), p.Orientation())
	assert.Equal(t, ShapeOffsets(KindI, 1), probed)
}

func TestPlacedPieceIsFrozen(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 30, KindL)
	p.MarkPlaced()
	p.MarkPlaced()

	p.Move(0, 30)
	assert.False(t, p.MoveWithCollision(30, 0, collidesNever))
	assert.False(t, p.RotateCW(collidesNever))

	x, y := p.Position()
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 30.0, y)
	assert.Equal(t, Orientation(0), p.Orientation())
	assert.True(t, p.IsPlaced())
}

func TestPieceBounds(t *testing.T) {
	f := defaultField(t)

	tests := []struct {
		name     string
		kind     Kind
		rotate   int
		expected Bounds
	}{
		{"I horizontal", KindI, 0, Bounds{X1: 120, Y1: 300, X2: 210, Y2: 330}},
		{"I vertical", KindI, 1, Bounds{X1: 150, Y1: 270, X2: 180, Y2: 360}},
		{"L orientation 0", KindL, 0, Bounds{X1: 150, Y1: 270, X2: 210, Y2: 330}},
		{"L orientation 1", KindL, 1, Bounds{X1: 150, Y1: 270, X2: 210, Y2: 330}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPiece(f, 150, 300, tt.kind)
			for i := 0; i < tt.rotate; i++ {
				require.True(t, p.RotateCW(collidesNever))
			}
			assert.Equal(t, tt.expected, p.Bounds())
		})
	}
}

func TestPieceBoundsFollowsOrientation(t *testing.T) {
	f := defaultField(t)
	p := NewPiece(f, 150, 300, KindI)
	before := p.Bounds()

	require.True(t, p.RotateCW(collidesNever))

	assert.NotEqual(t, before, p.Bounds())
}
