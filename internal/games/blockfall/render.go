package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Each grid cell is drawn two characters wide so it looks square.
const cellChars = 2

const (
	placedCell = "██"
	activeCell = "▓▓"
	hudWidth   = 22
)

var instructions = []string{
	"Left/Right: move",
	"Up: rotate",
	"Down: drop",
	"Space: next piece",
	"P: pause  Q: quit",
}

// boardRect returns the screen rectangle of the bordered playfield.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w := g.field.Cols*cellChars + 2
	h := g.field.Rows + 2
	r := dst.Bounds().Centered(w+hudWidth, h)
	r.W, r.H = w, h
	return r
}

// fits reports whether the board and HUD fit on the screen.
func (g *Game) fits(dst *core.Screen) bool {
	return dst.Width() >= g.field.Cols*cellChars+2+hudWidth && dst.Height() >= g.field.Rows+2
}

// Render draws the board, the placed cells, the active piece and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if !g.fits(dst) {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.field.Cols*cellChars+2+hudWidth, g.field.Rows+2))
		return
	}

	board := g.boardRect(dst)
	dst.DrawBox(board, core.ColorGray)

	g.renderGrid(dst, board)
	if g.active != nil && !g.active.IsPlaced() {
		g.renderActive(dst, board)
	}
	g.renderHUD(dst, board)

	switch {
	case !g.started:
		g.renderInstructions(dst)
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderGrid draws every occupied cell in the color of its piece.
func (g *Game) renderGrid(dst *core.Screen, board core.Rect) {
	for j := 0; j < g.grid.Rows(); j++ {
		for i := 0; i < g.grid.Cols(); i++ {
			id := g.grid.GetCell(i, j)
			if id == 0 {
				continue
			}
			g.drawCell(dst, board, i, g.field.DisplayRow(j), placedCell, g.pieces.Color(id))
		}
	}
}

// renderActive draws the falling piece in the cells it would be stamped
// into if it landed now. Cells above the playfield (spawn overhang) are not
// drawn.
func (g *Game) renderActive(dst *core.Screen, board core.Rect) {
	p := g.active
	col, row := p.GridPosition()
	top := g.field.DisplayRow(row)
	color := p.Color()
	for _, off := range p.ShapeOffsets() {
		g.drawCell(dst, board, col+off.DX, top+off.DY, activeCell, color)
	}
}

// drawCell draws one cell at playfield column i and display row r (0 = top).
func (g *Game) drawCell(dst *core.Screen, board core.Rect, i, r int, glyph string, c core.Color) {
	if i < 0 || i >= g.field.Cols || r < 0 || r >= g.field.Rows {
		return
	}
	dst.DrawTextColored(board.X+1+i*cellChars, board.Y+1+r, glyph, c)
}

// renderHUD draws the status panel to the right of the board.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	x := board.Right() + 2
	y := board.Y

	dst.DrawTextColored(x, y, "BLOCKFALL", core.ColorCyan)
	dst.DrawText(x, y+2, fmt.Sprintf("Pieces: %d", g.placed))
	if g.cfg.Rules.ClearFullRows {
		dst.DrawText(x, y+3, fmt.Sprintf("Rows:   %d", g.rowsCleared))
	}
	if g.active != nil && !g.active.IsPlaced() {
		dst.DrawTextColored(x, y+4, "Piece:  "+g.active.Kind().String(), g.active.Color())
	}
	if g.waiting {
		dst.DrawTextColored(x, y+6, "Space: next piece", core.ColorYellow)
	}

	for i, line := range instructions {
		dst.DrawTextColored(x, board.Bottom()-len(instructions)+i, line, core.ColorGray)
	}
}

// renderInstructions draws the start screen over the board.
func (g *Game) renderInstructions(dst *core.Screen) {
	lines := []string{
		"Use left and right arrows to move.",
		"Up arrow to rotate.",
		"Space bar to create a new piece.",
		"",
		"Press Enter to start!",
	}
	g.renderBox(dst, lines)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	g.renderBox(dst, []string{line1, "", line2})
}

// renderBox draws lines centered inside a bordered box in the middle of the
// screen.
func (g *Game) renderBox(dst *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	box := dst.Bounds().Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l)
	}
}
