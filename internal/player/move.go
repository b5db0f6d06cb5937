package player

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// DefaultMargin is the distance checked around the target point on each axis.
const DefaultMargin = 0.2

// Mover applies collision-checked movement to a pose.
type Mover struct {
	MoveSpeed     float64 // cells per step
	RotationSpeed float64 // radians per step
	Margin        float64 // collision margin around the player
}

// DefaultMover returns the stock movement settings.
func DefaultMover() Mover {
	return Mover{MoveSpeed: 0.2, RotationSpeed: 0.1, Margin: DefaultMargin}
}

// WouldCollide reports whether standing at (x, y) overlaps a wall. The point
// itself and four margin offsets along the axes are checked. Cells outside
// the grid count as walls.
func WouldCollide(g *maze.Grid, x, y, margin float64) bool {
	points := [5][2]float64{
		{x, y},
		{x + margin, y},
		{x - margin, y},
		{x, y + margin},
		{x, y - margin},
	}
	for _, pt := range points {
		cx, cy := int(math.Floor(pt[0])), int(math.Floor(pt[1]))
		if !g.CellAt(cx, cy).Passable() {
			return true
		}
	}
	return false
}

// step moves p by speed along heading if the target is free.
func (m Mover) step(p *Pose, g *maze.Grid, heading, speed float64) bool {
	nx := p.X + math.Cos(heading)*speed
	ny := p.Y + math.Sin(heading)*speed
	if WouldCollide(g, nx, ny, m.Margin) {
		return false
	}
	p.X, p.Y = nx, ny
	return true
}

// Forward moves along the heading. It returns false when blocked.
func (m Mover) Forward(p *Pose, g *maze.Grid) bool {
	return m.step(p, g, p.Angle, m.MoveSpeed)
}

// Backward moves against the heading.
func (m Mover) Backward(p *Pose, g *maze.Grid) bool {
	return m.step(p, g, p.Angle, -m.MoveSpeed)
}

// StrafeLeft moves perpendicular to the heading, to the player's left.
func (m Mover) StrafeLeft(p *Pose, g *maze.Grid) bool {
	return m.step(p, g, p.Angle-math.Pi/2, m.MoveSpeed)
}

// StrafeRight moves perpendicular to the heading, to the player's right.
func (m Mover) StrafeRight(p *Pose, g *maze.Grid) bool {
	return m.step(p, g, p.Angle+math.Pi/2, m.MoveSpeed)
}

// TurnLeft rotates counter-clockwise on screen.
func (m Mover) TurnLeft(p *Pose) {
	p.Angle = NormalizeAngle(p.Angle - m.RotationSpeed)
}

// TurnRight rotates clockwise on screen.
func (m Mover) TurnRight(p *Pose) {
	p.Angle = NormalizeAngle(p.Angle + m.RotationSpeed)
}
