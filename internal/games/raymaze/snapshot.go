package raymaze

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateFailed      GameStateType = "failed"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Difficulty string
	Seed       int64
	Width      int
	Height     int
	X          float64
	Y          float64
	Angle      float64
	CellX      int
	CellY      int
	Walker     string // walker phase in demo mode, empty otherwise
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWon
	case g.failed:
		state = StateFailed
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	walker := ""
	if g.walker != nil {
		walker = g.walker.State().String()
	}

	c := g.pose.Cell()
	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Difficulty: g.profile.Name,
		Seed:       g.seed,
		Width:      g.profile.Width,
		Height:     g.profile.Height,
		X:          g.pose.X,
		Y:          g.pose.Y,
		Angle:      g.pose.Angle,
		CellX:      c.X,
		CellY:      c.Y,
		Walker:     walker,
		State:      state,
	}
}
