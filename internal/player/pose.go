// Package player holds the player's pose in the maze, collision-checked
// movement, and the automatic walker used by demo mode.
package player

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Pose is a continuous position in grid-cell units plus a heading in
// radians. Angle 0 faces +X, π/2 faces +Y (down on screen).
type Pose struct {
	X, Y  float64
	Angle float64
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from a to b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b) - NormalizeAngle(a)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Cell returns the grid cell containing the pose.
func (p Pose) Cell() maze.Point {
	return maze.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Degrees returns the heading in degrees, in [0, 360).
func (p Pose) Degrees() float64 {
	return NormalizeAngle(p.Angle) * 180 / math.Pi
}

// Spawn places a pose at the center of the grid's start cell, facing +X.
func Spawn(g *maze.Grid) (Pose, error) {
	start, err := g.StartPoint()
	if err != nil {
		return Pose{}, err
	}
	return Pose{X: float64(start.X) + 0.5, Y: float64(start.Y) + 0.5}, nil
}

// AtExit reports whether the pose stands on the exit cell.
func AtExit(p Pose, g *maze.Grid) bool {
	c := p.Cell()
	return g.CellAt(c.X, c.Y) == maze.Exit
}
