// Package blockfall implements a minimal falling-block puzzle: one active
// piece falls under gravity, can be moved and rotated against the grid, and
// is stamped into the grid when it lands.
package blockfall

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// GameID is the registry id of the game.
const GameID = "blockfall"

// Package-level settings applied by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard",
// "fixed"). Unknown values clear the preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created with New.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game is one play session: a grid, the pieces created so far and the
// active piece.
type Game struct {
	cfg        config.BlockfallConfig
	cfgFixed   bool // cfg was injected; Reset must not reload it
	log        *log.Logger
	field      Field
	grid       *Grid
	pieces     *PieceSet
	active     *Piece
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	tick        uint64
	placed      int
	rowsCleared int
	fallStep    float64

	started  bool // instructions dismissed
	waiting  bool // active piece landed, next spawn pending
	gameOver bool
	paused   bool

	screenW int
	screenH int
}

// New creates a game that loads its configuration on Reset using the
// package-level config path and difficulty preset.
func New() *Game {
	return &Game{log: logger}
}

// NewWithConfig creates a game with a fixed configuration.
// It fails if the configuration does not describe a playable field.
func NewWithConfig(cfg config.BlockfallConfig, l *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("blockfall: %w", err)
	}
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Game{cfg: cfg, cfgFixed: true, log: l}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset starts a new session: empty grid, empty piece set, first piece at
// the spawn point.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if !g.cfgFixed {
		cfg, err := config.LoadBlockfall(configPath)
		if err != nil {
			g.log.Warn("using default config", "error", err)
			cfg = config.DefaultBlockfallConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	if err := g.build(); err != nil {
		g.log.Error("invalid field, falling back to defaults", "error", err)
		g.cfg = config.DefaultBlockfallConfig()
		if err := g.build(); err != nil {
			panic(fmt.Sprintf("blockfall: default config: %v", err))
		}
	}

	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.tick = 0
	g.placed = 0
	g.rowsCleared = 0
	g.started = !g.cfg.Rules.ShowInstructions
	g.waiting = false
	g.gameOver = false
	g.paused = false
	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.active = nil

	g.spawn()
}

// build creates the field, grid and piece set from g.cfg.
func (g *Game) build() error {
	fc := g.cfg.Field
	field, err := NewField(fc.Cols, fc.Rows, fc.CellWidth, fc.CellHeight)
	if err != nil {
		return err
	}
	grid, err := NewGrid(fc.Cols, fc.Rows)
	if err != nil {
		return err
	}
	g.field = field
	g.grid = grid
	g.pieces = NewPieceSet()
	return nil
}

// Field returns the playfield geometry.
func (g *Game) Field() Field {
	return g.field
}

// Grid returns the occupancy grid.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Pieces returns the session's piece set.
func (g *Game) Pieces() *PieceSet {
	return g.pieces
}

// Active returns the current piece. It may already be placed while the game
// waits for the next spawn.
func (g *Game) Active() *Piece {
	return g.active
}

// Step advances the game by one tick: input first, then gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		g.started = true
		return core.StepResult{State: g.State()}
	}

	if !g.started {
		if in.Has(core.ActionSpawn) {
			g.started = true
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		g.apply(a)
	}

	g.fall()

	return core.StepResult{State: g.State()}
}

// apply handles one input action.
func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.shift(-g.field.CellW)
	case core.ActionRight:
		g.shift(g.field.CellW)
	case core.ActionRotate:
		if g.active == nil || g.active.IsPlaced() {
			return
		}
		if !g.active.RotateCW(g.grid.Blocked) {
			g.log.Debug("rotation blocked", "piece", g.active.ID(), "orientation", g.active.Orientation())
		}
	case core.ActionDrop:
		g.drop()
	case core.ActionSpawn:
		if g.waiting {
			g.spawn()
		}
	}
}

// shift moves the active piece one cell sideways if the grid allows it.
func (g *Game) shift(dx float64) {
	if g.active == nil || g.active.IsPlaced() {
		return
	}
	if !g.active.MoveWithCollision(dx, 0, g.grid.Blocked) {
		g.log.Debug("collision", "piece", g.active.ID(), "dx", dx, "dy", 0)
	}
}

// fall runs one gravity tick: land the piece if the probe below it
// collides or it reached the floor, otherwise move it down one step.
func (g *Game) fall() {
	if g.active == nil || g.active.IsPlaced() {
		return
	}
	if g.landingDue() {
		g.land()
		return
	}
	g.active.Move(0, g.fallStep)
}

// drop lets the active piece fall until it lands.
func (g *Game) drop() {
	if g.active == nil || g.active.IsPlaced() {
		return
	}
	// Upper bound on gravity steps from the top of the field to the floor.
	limit := int(math.Ceil(g.field.Height()/g.fallStep)) + 1
	for i := 0; i < limit && !g.landingDue(); i++ {
		g.active.Move(0, g.fallStep)
	}
	g.land()
}

// landingDue reports whether the active piece has reached the floor line or
// would collide when probed slightly below its current position.
func (g *Game) landingDue() bool {
	p := g.active
	x, y := p.Position()
	col, row := g.field.ToGrid(x, y+g.cfg.Physics.LandingProbeOffset)
	collided := g.grid.Collides(col, row, p.ShapeOffsets())
	return p.Bounds().Y2 >= g.field.FloorY() || collided
}

// land stamps the active piece into the grid and marks it placed.
func (g *Game) land() {
	p := g.active
	if p.IsPlaced() {
		return
	}
	col, row := p.GridPosition()
	g.grid.Stamp(col, row, p.ShapeOffsets(), p.ID())
	p.MarkPlaced()
	g.placed++
	g.log.Debug("landed", "piece", p.ID(), "kind", p.Kind(), "col", col, "row", row)

	if g.cfg.Rules.ClearFullRows {
		if cleared := g.grid.ClearFullRows(); len(cleared) > 0 {
			g.rowsCleared += len(cleared)
			g.log.Debug("rows cleared", "rows", cleared)
		}
	}

	if g.cfg.Rules.AutoSpawn {
		g.spawn()
		return
	}
	g.waiting = true
}

// spawn creates the next piece at the spawn point. If its footprint is
// already blocked the stack has reached the top and the game is over.
func (g *Game) spawn() {
	kind := KindL
	if g.rng.Float64() < 0.5 {
		kind = KindI
	}
	x, y := g.field.SpawnPoint()
	p := NewPiece(g.field, x, y, kind)
	g.pieces.Add(p)
	g.active = p
	g.waiting = false
	g.fallStep = fallStepFor(g.difficulty.Speed(g.cfg.Physics.FallStep, g.placed, g.tick), g.field.CellH)

	col, row := p.GridPosition()
	if g.grid.Blocked(col, row, p.ShapeOffsets()) {
		g.gameOver = true
		g.log.Info("stack reached the top", "placed", g.placed)
		return
	}
	g.log.Debug("spawned", "piece", p.ID(), "kind", kind, "fall_step", g.fallStep)
}

// fallStepFor rounds a gravity speed down to a whole step that divides the
// cell height, so a falling piece passes through every cell-aligned
// position. The step is chosen per piece and never changes mid-fall.
// cellH is a whole number; config validation rejects anything else.
func fallStepFor(speed, cellH float64) float64 {
	h := int(cellH)
	for d := min(int(speed), h); d > 1; d-- {
		if h%d == 0 {
			return float64(d)
		}
	}
	return 1
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Placed:   g.placed,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
