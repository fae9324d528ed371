package blockfall

// StateType names the phase the game is in.
type StateType string

const (
	StateInstructions StateType = "instructions"
	StateFalling      StateType = "falling"
	StateWaiting      StateType = "waiting_for_spawn"
	StatePaused       StateType = "paused"
	StateGameOver     StateType = "game_over"
)

// Snapshot captures the game state for determinism tests and debugging.
// Piece ids are process-wide, so snapshots compare the active kind and
// position rather than its id.
type Snapshot struct {
	Tick        uint64
	Placed      int
	RowsCleared int
	Occupied    int
	ActiveKind  Kind
	Orientation Orientation
	X, Y        float64
	FallStep    float64
	State       StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StateFalling
	switch {
	case g.gameOver:
		state = StateGameOver
	case !g.started:
		state = StateInstructions
	case g.paused:
		state = StatePaused
	case g.waiting:
		state = StateWaiting
	}

	s := Snapshot{
		Tick:        g.tick,
		Placed:      g.placed,
		RowsCleared: g.rowsCleared,
		Occupied:    g.grid.OccupiedCount(),
		FallStep:    g.fallStep,
		State:       state,
	}
	if g.active != nil {
		s.ActiveKind = g.active.Kind()
		s.Orientation = g.active.Orientation()
		s.X, s.Y = g.active.Position()
	}
	return s
}
