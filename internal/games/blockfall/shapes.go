package blockfall

import (
	"bytes"
	"fmt"
)

// Kind identifies a piece shape.
type Kind uint8

const (
	KindI Kind = iota
	KindL
)

// Kinds lists every piece kind in table order.
var Kinds = []Kind{KindI, KindL}

// String returns the one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// ParseKind converts a one-letter name ("I", "L") to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("blockfall: unknown piece kind %q", s)
}

// Offset is one occupied cell relative to the piece anchor.
// DX grows to the right and DY grows downward, as in render space.
type Offset struct {
	DX, DY int
}

// Orientation selects one of the four rotation states of a shape table.
type Orientation uint8

// NumOrientations is the number of rotation states every kind has.
const NumOrientations = 4

// Next returns the orientation one clockwise quarter turn further.
func (o Orientation) Next() Orientation {
	return (o + 1) % NumOrientations
}

// shapeTables holds the footprint of every kind in every orientation.
// Rotation is a lookup into these hand-authored tables, never a computed
// transform: not every entry is a plain quarter turn of the previous one.
var shapeTables = map[Kind][NumOrientations][]Offset{
	KindI: {
		{{-1, 0}, {0, 0}, {1, 0}}, // horizontal
		{{0, -1}, {0, 0}, {0, 1}}, // vertical
		{{-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {0, 1}},
	},
	KindL: {
		{{0, -1}, {0, 0}, {1, 0}},
		{{1, -1}, {0, -1}, {0, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{0, 0}, {1, 0}, {1, -1}},
	},
}

// ShapeOffsets returns the footprint of kind k at orientation o.
// The returned slice is a copy and may be modified by the caller.
func ShapeOffsets(k Kind, o Orientation) []Offset {
	table, ok := shapeTables[k]
	if !ok {
		return nil
	}
	src := table[o%NumOrientations]
	out := make([]Offset, len(src))
	copy(out, src)
	return out
}

// CellCount returns how many cells a piece of kind k occupies.
func CellCount(k Kind) int {
	return len(shapeTables[k][0])
}

// Diagram draws the footprint of kind k at orientation o as text rows, top
// row first. Occupied cells are '#', the anchor is '@' when occupied and
// '+' when it is not, other cells are '.'.
func Diagram(k Kind, o Orientation) []string {
	offsets := ShapeOffsets(k, o)
	minX, maxX, minY, maxY := 0, 0, 0, 0
	for _, off := range offsets {
		minX, maxX = min(minX, off.DX), max(maxX, off.DX)
		minY, maxY = min(minY, off.DY), max(maxY, off.DY)
	}

	rows := make([][]byte, maxY-minY+1)
	for j := range rows {
		rows[j] = bytes.Repeat([]byte{'.'}, maxX-minX+1)
	}
	rows[-minY][-minX] = '+'
	for _, off := range offsets {
		c := byte('#')
		if off.DX == 0 && off.DY == 0 {
			c = '@'
		}
		rows[off.DY-minY][off.DX-minX] = c
	}

	out := make([]string, len(rows))
	for j, r := range rows {
		out[j] = string(r)
	}
	return out
}
