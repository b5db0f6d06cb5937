// Package config provides YAML-based configuration loading for the maze game:
// render settings, player movement, generator policy and difficulty profiles.
package config

import (
	"errors"
	"fmt"
)

// MazeConfig contains all configuration for the maze game.
type MazeConfig struct {
	Render       RenderConfig        `yaml:"render"`
	Player       PlayerConfig        `yaml:"player"`
	Generator    GeneratorConfig     `yaml:"generator"`
	Difficulties []DifficultyProfile `yaml:"difficulties"`
	Default      string              `yaml:"default_difficulty"`
}

// RenderConfig defines the first-person view and minimap.
type RenderConfig struct {
	Columns       int     `yaml:"columns"`
	Rows          int     `yaml:"rows"`
	FOV           float64 `yaml:"fov"` // radians
	MaxDistance   float64 `yaml:"max_distance"`
	AspectScale   float64 `yaml:"aspect_scale"`
	Gradient      string  `yaml:"gradient"`
	MinimapRadius int     `yaml:"minimap_radius"`
}

// PlayerConfig defines movement speeds.
type PlayerConfig struct {
	MoveSpeed          float64 `yaml:"move_speed"`
	RotationSpeed      float64 `yaml:"rotation_speed"`
	CollisionMargin    float64 `yaml:"collision_margin"`
	DemoStepsPerSecond int     `yaml:"demo_steps_per_second"`
}

// GeneratorConfig defines the solvability policy and size cap.
type GeneratorConfig struct {
	Solvability       string `yaml:"solvability"` // "exact" or "relaxed"
	RelaxedRadius     int    `yaml:"relaxed_radius"`
	RelaxedStepBudget int    `yaml:"relaxed_step_budget"`
	MaxCells          int    `yaml:"max_cells"`
}

// DifficultyProfile selects the grid size for one difficulty level.
type DifficultyProfile struct {
	Name     string `yaml:"name"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	RoomSize int    `yaml:"room_size"`
}

// Cells returns the grid area of the profile.
func (p DifficultyProfile) Cells() int {
	return p.Width * p.Height
}

func (p DifficultyProfile) String() string {
	return fmt.Sprintf("%s (%dx%d, rooms %d)", p.Name, p.Width, p.Height, p.RoomSize)
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the config for values the game cannot run with.
func (c MazeConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Render.Columns < 2 || c.Render.Rows < 1 {
		bad("render size %dx%d", c.Render.Columns, c.Render.Rows)
	}
	if c.Render.FOV <= 0 {
		bad("fov %v must be positive", c.Render.FOV)
	}
	if c.Render.MaxDistance <= 0 {
		bad("max_distance %v must be positive", c.Render.MaxDistance)
	}
	if c.Render.AspectScale <= 0 {
		bad("aspect_scale %v must be positive", c.Render.AspectScale)
	}
	if len([]rune(c.Render.Gradient)) < 2 {
		bad("gradient %q needs at least two glyphs", c.Render.Gradient)
	}
	if c.Render.MinimapRadius < 0 {
		bad("minimap_radius %d", c.Render.MinimapRadius)
	}

	if c.Player.MoveSpeed <= 0 || c.Player.RotationSpeed <= 0 {
		bad("player speeds must be positive")
	}
	if c.Player.CollisionMargin < 0 || c.Player.CollisionMargin >= 0.5 {
		bad("collision_margin %v must be in [0, 0.5)", c.Player.CollisionMargin)
	}
	if c.Player.DemoStepsPerSecond <= 0 {
		bad("demo_steps_per_second %d must be positive", c.Player.DemoStepsPerSecond)
	}

	switch c.Generator.Solvability {
	case "exact", "relaxed":
	default:
		bad("solvability %q must be exact or relaxed", c.Generator.Solvability)
	}
	if c.Generator.MaxCells <= 0 {
		bad("max_cells %d must be positive", c.Generator.MaxCells)
	}

	if len(c.Difficulties) == 0 {
		bad("no difficulty profiles")
	}
	seen := make(map[string]bool)
	for _, p := range c.Difficulties {
		if p.Name == "" {
			bad("difficulty without a name")
			continue
		}
		if seen[p.Name] {
			bad("duplicate difficulty %q", p.Name)
		}
		seen[p.Name] = true
		if p.Width <= 0 || p.Height <= 0 {
			bad("difficulty %q: size %dx%d", p.Name, p.Width, p.Height)
		}
		if p.RoomSize < 2 {
			bad("difficulty %q: room_size %d < 2", p.Name, p.RoomSize)
		}
	}
	if c.Default != "" && !seen[c.Default] {
		bad("default_difficulty %q is not defined", c.Default)
	}

	return errors.Join(errs...)
}
