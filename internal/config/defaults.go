package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the hardcoded maze configuration. It mirrors
// defaults/maze.yaml and is used when the embedded file cannot be parsed.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Render: RenderConfig{
			Columns:       120,
			Rows:          40,
			FOV:           math.Pi / 3,
			MaxDistance:   10,
			AspectScale:   2,
			Gradient:      "@%#*+=-,. ",
			MinimapRadius: 10,
		},
		Player: PlayerConfig{
			MoveSpeed:          0.2,
			RotationSpeed:      0.1,
			CollisionMargin:    0.2,
			DemoStepsPerSecond: 20,
		},
		Generator: GeneratorConfig{
			Solvability:       "exact",
			RelaxedRadius:     20,
			RelaxedStepBudget: 150000,
			MaxCells:          1 << 20,
		},
		Default: "easy",
		Difficulties: []DifficultyProfile{
			{Name: "easy", Width: 50, Height: 50, RoomSize: 3},
			{Name: "normal", Width: 100, Height: 100, RoomSize: 5},
			{Name: "hard", Width: 200, Height: 200, RoomSize: 7},
			{Name: "hardcore", Width: 400, Height: 400, RoomSize: 9},
			{Name: "extreme", Width: 800, Height: 800, RoomSize: 11},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
