package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed; the same seed regenerates the same maze
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  120,
		ScreenH:  40,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Ticks    uint64 // Simulation ticks spent in the current run
	GameOver bool   // Whether the run has ended (won or failed)
	Won      bool   // Whether the exit was reached
	Paused   bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// DumpRequested is set when the player asked for a dump report this tick.
	DumpRequested bool
}

// RunSummary describes a finished or abandoned run for the history store.
type RunSummary struct {
	Mode       string
	Difficulty string
	Width      int
	Height     int
	Seed       int64
	Ticks      uint64
	Elapsed    time.Duration // in-game time derived from Ticks and the tick rate
	Won        bool
}
