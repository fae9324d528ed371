package blockfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

func newTestGame(t *testing.T, mutate func(*config.BlockfallConfig)) *Game {
	t.Helper()
	cfg := config.DefaultBlockfallConfig()
	cfg.Rules.ShowInstructions = false
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := NewWithConfig(cfg, nil)
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	var f core.InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func assertConsistent(t *testing.T, g *Game) {
	t.Helper()
	col, row, ok := g.Pieces().Verify(g.Grid())
	assert.True(t, ok, "cell (%d, %d) does not belong to a placed piece", col, row)
}

// useActive replaces the active piece with one of a known kind at the spawn
// point.
func useActive(g *Game, kind Kind) *Piece {
	x, y := g.field.SpawnPoint()
	p := NewPiece(g.field, x, y, kind)
	g.pieces.Add(p)
	g.active = p
	return p
}

func TestNewWithConfigInvalid(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	cfg.Field.Cols = 0
	_, err := NewWithConfig(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewWithConfigFractionalCellHeight(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	cfg.Field.CellHeight = 30.5
	_, err := NewWithConfig(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGameLandingKeepsObstacles(t *testing.T) {
	for r := 0; r < 16; r++ {
		g := newTestGame(t, nil)
		obstacle := NewPiece(g.field, 0, 0, KindI)
		obstacle.MarkPlaced()
		g.pieces.Add(obstacle)
		g.grid.SetCell(4, r, obstacle.ID())

		p := useActive(g, KindI)
		for i := 0; i < 1000 && !p.IsPlaced(); i++ {
			g.Step(frame())
		}

		require.True(t, p.IsPlaced())
		assert.Equal(t, obstacle.ID(), g.Grid().GetCell(4, r), "obstacle at row %d", r)
		_, row := p.GridPosition()
		assert.Equal(t, r+1, row, "landing row above obstacle at row %d", r)
		assertConsistent(t, g)
	}
}

func TestGameResetFallsBackToDefaults(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	cfg.Field.Rows = 0
	g := &Game{cfg: cfg, cfgFixed: true, log: logger}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	require.NotNil(t, g.Grid())
	assert.Equal(t, 18, g.Grid().Rows())
	require.NotNil(t, g.Active())
	assert.False(t, g.State().GameOver)
}

func TestGameResetSpawnsPiece(t *testing.T) {
	g := newTestGame(t, nil)

	p := g.Active()
	require.NotNil(t, p)
	assert.False(t, p.IsPlaced())
	x, y := p.Position()
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 30.0, y)
	assert.Equal(t, 1, g.Pieces().Len())
	assert.Equal(t, 0, g.Grid().OccupiedCount())
	assert.Equal(t, StateFalling, g.Snapshot().State)
}

func TestGameGravityLandsOnFloor(t *testing.T) {
	g := newTestGame(t, nil)
	p := useActive(g, KindI)

	ticks := 0
	for !p.IsPlaced() && ticks < 1000 {
		g.Step(frame())
		ticks++
	}

	require.True(t, p.IsPlaced())
	// 510 px to the floor row at 2 px per tick, then one landing tick.
	assert.Equal(t, 256, ticks)
	_, y := p.Position()
	assert.Equal(t, 540.0, y)
	assert.Equal(t, p.ID(), g.Grid().GetCell(3, 0))
	assert.Equal(t, p.ID(), g.Grid().GetCell(4, 0))
	assert.Equal(t, p.ID(), g.Grid().GetCell(5, 0))
	assert.Equal(t, PieceID(0), g.Grid().GetCell(4, 1))
	assert.Equal(t, StateWaiting, g.Snapshot().State)
	assert.Equal(t, 1, g.State().Placed)
	assertConsistent(t, g)
}

func TestGameDropStampsFootprint(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			g := newTestGame(t, nil)
			p := useActive(g, kind)

			g.Step(frame(core.ActionDrop))

			require.True(t, p.IsPlaced())
			col, row := p.GridPosition()
			for _, off := range p.ShapeOffsets() {
				assert.Equal(t, p.ID(), g.Grid().GetCell(col+off.DX, row-off.DY))
			}
			assert.Equal(t, CellCount(kind), g.Grid().OccupiedCount())
			// The lowest cell of the footprint rests on the floor.
			assert.Equal(t, g.Field().FloorY(), p.Bounds().Y2)
			assertConsistent(t, g)
		})
	}
}

func TestGamePiecesStack(t *testing.T) {
	g := newTestGame(t, nil)
	first := useActive(g, KindI)
	g.Step(frame(core.ActionDrop))
	require.True(t, first.IsPlaced())

	g.Step(frame(core.ActionSpawn))
	second := useActive(g, KindI)
	g.Step(frame(core.ActionDrop))

	require.True(t, second.IsPlaced())
	assert.Equal(t, second.ID(), g.Grid().GetCell(4, 1))
	assert.Equal(t, first.ID(), g.Grid().GetCell(4, 0))
	assertConsistent(t, g)
}

func TestGameWaitsForSpawn(t *testing.T) {
	g := newTestGame(t, nil)
	first := g.Active()
	g.Step(frame(core.ActionDrop))
	require.True(t, first.IsPlaced())

	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionLeft, core.ActionRotate))
	}
	assert.Same(t, first, g.Active())
	assert.Equal(t, StateWaiting, g.Snapshot().State)

	g.Step(frame(core.ActionSpawn))

	next := g.Active()
	assert.NotSame(t, first, next)
	assert.Greater(t, next.ID(), first.ID())
	assert.False(t, next.IsPlaced())
	assert.Equal(t, 2, g.Pieces().Len())
	assert.Equal(t, StateFalling, g.Snapshot().State)
}

func TestGameSpawnIgnoredWhileFalling(t *testing.T) {
	g := newTestGame(t, nil)
	active := g.Active()

	g.Step(frame(core.ActionSpawn))

	assert.Same(t, active, g.Active())
	assert.Equal(t, 1, g.Pieces().Len())
}

func TestGameAutoSpawn(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Rules.AutoSpawn = true
	})
	first := g.Active()

	g.Step(frame(core.ActionDrop))

	assert.True(t, first.IsPlaced())
	assert.NotSame(t, first, g.Active())
	assert.False(t, g.Active().IsPlaced())
	assert.Equal(t, StateFalling, g.Snapshot().State)
}

func TestGameMoveAndRotate(t *testing.T) {
	g := newTestGame(t, nil)
	p := useActive(g, KindI)

	g.Step(frame(core.ActionLeft, core.ActionLeft))
	col, _ := p.GridPosition()
	assert.Equal(t, 2, col)

	g.Step(frame(core.ActionRight))
	col, _ = p.GridPosition()
	assert.Equal(t, 3, col)

	g.Step(frame(core.ActionRotate))
	assert.Equal(t, Orientation(1), p.Orientation())
}

func TestGameWallsStopPiece(t *testing.T) {
	g := newTestGame(t, nil)
	p := useActive(g, KindI)

	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionLeft))
	}
	col, _ := p.GridPosition()
	assert.Equal(t, 1, col)

	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionRight))
	}
	col, _ = p.GridPosition()
	assert.Equal(t, 7, col)
}

func TestGameTopOut(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Rules.AutoSpawn = true
	})

	for i := 0; i < 100 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionDrop))
		assertConsistent(t, g)
	}

	require.True(t, g.State().GameOver)
	assert.Equal(t, StateGameOver, g.Snapshot().State)

	// Input is ignored until restart.
	placed := g.State().Placed
	g.Step(frame(core.ActionDrop))
	assert.Equal(t, placed, g.State().Placed)

	g.Step(frame(core.ActionRestart))
	assert.False(t, g.State().GameOver)
	assert.Equal(t, 0, g.State().Placed)
	assert.Equal(t, 0, g.Grid().OccupiedCount())
	assert.Equal(t, StateFalling, g.Snapshot().State)
}

func TestGameRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(frame(core.ActionDrop))

	g.Step(frame(core.ActionRestart))

	assert.Equal(t, 1, g.State().Placed)
}

func TestGameInstructionsGate(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Rules.ShowInstructions = true
	})
	_, y0 := g.Active().Position()

	g.Step(frame(core.ActionDrop))
	_, y := g.Active().Position()
	assert.Equal(t, y0, y)
	assert.Equal(t, StateInstructions, g.Snapshot().State)

	g.Step(frame(core.ActionSpawn))
	assert.Equal(t, StateFalling, g.Snapshot().State)

	g.Step(frame())
	_, y = g.Active().Position()
	assert.Greater(t, y, y0)
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(frame(core.ActionPause))
	assert.True(t, g.State().Paused)
	_, y0 := g.Active().Position()

	g.Step(frame(core.ActionLeft))
	g.Step(frame())
	x, y := g.Active().Position()
	assert.Equal(t, y0, y)
	assert.Equal(t, 150.0, x)
	assert.Equal(t, StatePaused, g.Snapshot().State)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
	g.Step(frame())
	_, y = g.Active().Position()
	assert.Greater(t, y, y0)
}

func TestGameClearFullRows(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Rules.ClearFullRows = true
	})

	filler := NewPiece(g.field, 0, 0, KindI)
	filler.MarkPlaced()
	g.pieces.Add(filler)
	for i := 0; i < g.grid.Cols(); i++ {
		if i < 3 || i > 5 {
			g.grid.SetCell(i, 0, filler.ID())
		}
	}
	g.grid.SetCell(0, 1, filler.ID())

	useActive(g, KindI)
	g.Step(frame(core.ActionDrop))

	snap := g.Snapshot()
	assert.Equal(t, 1, snap.RowsCleared)
	assert.Equal(t, 1, snap.Occupied)
	assert.Equal(t, filler.ID(), g.Grid().GetCell(0, 0))
	assertConsistent(t, g)
}

func TestGameFullRowsKeptByDefault(t *testing.T) {
	g := newTestGame(t, nil)

	filler := NewPiece(g.field, 0, 0, KindI)
	filler.MarkPlaced()
	g.pieces.Add(filler)
	for i := 0; i < g.grid.Cols(); i++ {
		if i < 3 || i > 5 {
			g.grid.SetCell(i, 0, filler.ID())
		}
	}

	useActive(g, KindI)
	g.Step(frame(core.ActionDrop))

	assert.Equal(t, []int{0}, FindFullRows(g.Grid()))
	assert.Equal(t, 0, g.Snapshot().RowsCleared)
}

func TestGameDeterministic(t *testing.T) {
	script := []core.InputFrame{
		frame(core.ActionLeft),
		frame(core.ActionRotate),
		frame(core.ActionDrop),
		frame(core.ActionSpawn),
		frame(core.ActionRight, core.ActionRight),
		frame(core.ActionDrop),
		frame(core.ActionSpawn),
		frame(core.ActionRotate, core.ActionLeft),
	}
	run := func() []Snapshot {
		g := newTestGame(t, nil)
		var out []Snapshot
		for i := 0; i < 40; i++ {
			g.Step(script[i%len(script)])
			out = append(out, g.Snapshot())
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestGameDifficultySpeedsUpFall(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Difficulty.Enabled = true
		c.Difficulty.InitialLevel = 1.0
		c.Difficulty.Scaling.SpeedMultiplier = 2.0
	})

	// 2 px base * 3 = 6 px, which divides the 30 px cell.
	assert.Equal(t, 6.0, g.Snapshot().FallStep)
}

func TestFallStepFor(t *testing.T) {
	tests := []struct {
		speed, cellH float64
		expected     float64
	}{
		{2, 30, 2},
		{4, 30, 3},
		{7, 30, 6},
		{30, 30, 30},
		{45, 30, 30},
		{0.5, 30, 1},
	}
	for _, tt := range tests {
		if got := fallStepFor(tt.speed, tt.cellH); got != tt.expected {
			t.Errorf("fallStepFor(%v, %v) = %v, expected %v", tt.speed, tt.cellH, got, tt.expected)
		}
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(frame(core.ActionDrop))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "BLOCKFALL")
	assert.Contains(t, out, "Pieces: 1")
	assert.Contains(t, out, placedCell)
	assert.Contains(t, out, "Space: next piece")
}

func TestGameRenderInstructions(t *testing.T) {
	g := newTestGame(t, func(c *config.BlockfallConfig) {
		c.Rules.ShowInstructions = true
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.String(), "Press Enter to start!")
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(t, nil)

	screen := core.NewScreen(30, 10)
	g.Render(screen)

	assert.Contains(t, screen.String(), "Window too small")
}
