package blockfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeOffsetsCellCount(t *testing.T) {
	for _, k := range Kinds {
		for o := Orientation(0); o < NumOrientations; o++ {
			offsets := ShapeOffsets(k, o)
			if len(offsets) != CellCount(k) {
				t.Errorf("ShapeOffsets(%s, %d) has %d cells, expected %d", k, o, len(offsets), CellCount(k))
			}
		}
	}
}

func TestShapeOffsetsISymmetry(t *testing.T) {
	assert.Equal(t, ShapeOffsets(KindI, 0), ShapeOffsets(KindI, 2))
	assert.Equal(t, ShapeOffsets(KindI, 1), ShapeOffsets(KindI, 3))
	assert.Equal(t, []Offset{{-1, 0}, {0, 0}, {1, 0}}, ShapeOffsets(KindI, 0))
	assert.Equal(t, []Offset{{0, -1}, {0, 0}, {0, 1}}, ShapeOffsets(KindI, 1))
}

func TestShapeOffsetsLTable(t *testing.T) {
	tests := []struct {
		orient   Orientation
		expected []Offset
	}{
		{0, []Offset{{0, -1}, {0, 0}, {1, 0}}},
		{1, []Offset{{1, -1}, {0, -1}, {0, 0}}},
		{2, []Offset{{0, -1}, {1, -1}, {1, 0}}},
		{3, []Offset{{0, 0}, {1, 0}, {1, -1}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ShapeOffsets(KindL, tt.orient), "orientation %d", tt.orient)
	}
}

func TestShapeOffsetsReturnsCopy(t *testing.T) {
	offsets := ShapeOffsets(KindL, 0)
	offsets[0] = Offset{DX: 9, DY: 9}
	assert.Equal(t, Offset{DX: 0, DY: -1}, ShapeOffsets(KindL, 0)[0])
}

func TestShapeOffsetsUnknownKind(t *testing.T) {
	assert.Nil(t, ShapeOffsets(Kind(42), 0))
}

func TestOrientationNext(t *testing.T) {
	tests := []struct {
		from, expected Orientation
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 0},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.expected {
			t.Errorf("Orientation(%d).Next() = %d, expected %d", tt.from, got, tt.expected)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("Z")
	assert.Error(t, err)
	assert.Equal(t, "?", Kind(42).String())
}

func TestDiagram(t *testing.T) {
	tests := []struct {
		kind     Kind
		orient   Orientation
		expected []string
	}{
		{KindI, 0, []string{"#@#"}},
		{KindI, 1, []string{"#", "@", "#"}},
		{KindL, 0, []string{"#.", "@#"}},
		{KindL, 2, []string{"##", "+#"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Diagram(tt.kind, tt.orient), "%s orientation %d", tt.kind, tt.orient)
	}
}
