// Package raycast projects a maze grid into a first-person text frame using
// grid DDA ray marching, and draws a top-down minimap around the player.
package raycast

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/player"
)

// DefaultGradient runs from the densest glyph (near) to blank (far).
const DefaultGradient = "@%#*+=-,. "

// Settings configures the projection. Settings is a plain value so each game
// instance owns its own copy.
type Settings struct {
	Columns     int     // character columns; one ray per two columns
	Rows        int     // character rows
	FOV         float64 // horizontal field of view, radians
	MaxDistance float64 // rays stop here; walls past it render blank
	AspectScale float64 // vertical stretch for non-square character cells
	Gradient    string  // shading glyphs, brightest first
}

// DefaultSettings returns a 120x40 view with a 60 degree field of view.
func DefaultSettings() Settings {
	return Settings{
		Columns:     120,
		Rows:        40,
		FOV:         math.Pi / 3,
		MaxDistance: 10,
		AspectScale: 2,
		Gradient:    DefaultGradient,
	}
}

// Side tells which kind of grid line a ray crossed last.
type Side int

const (
	SideVertical   Side = iota // an x gridline (east/west face)
	SideHorizontal             // a y gridline (north/south face)
)

// HitKind is what stopped a ray.
type HitKind int

const (
	HitWall HitKind = iota
	HitExit
)

// Hit is the outcome of one ray.
type Hit struct {
	Distance  float64 // perpendicular to the view direction
	Kind      HitKind
	Side      Side
	Truncated bool // nothing hit within MaxDistance or the grid bounds
}

// Caster renders frames for fixed Settings.
type Caster struct {
	s        Settings
	gradient []rune
}

// New creates a caster. Zero or negative fields fall back to defaults.
func New(s Settings) *Caster {
	d := DefaultSettings()
	if s.Columns <= 0 {
		s.Columns = d.Columns
	}
	if s.Rows <= 0 {
		s.Rows = d.Rows
	}
	if s.FOV <= 0 {
		s.FOV = d.FOV
	}
	if s.MaxDistance <= 0 {
		s.MaxDistance = d.MaxDistance
	}
	if s.AspectScale <= 0 {
		s.AspectScale = d.AspectScale
	}
	if s.Gradient == "" {
		s.Gradient = d.Gradient
	}
	return &Caster{s: s, gradient: []rune(s.Gradient)}
}

// Settings returns the effective settings.
func (c *Caster) Settings() Settings { return c.s }

// Rays returns the number of rays per frame. Each ray is drawn two columns
// wide.
func (c *Caster) Rays() int {
	n := c.s.Columns / 2
	if n < 1 {
		n = 1
	}
	return n
}

// RayAngle returns the world angle of ray i for the given heading.
func (c *Caster) RayAngle(heading float64, i int) float64 {
	return heading - c.s.FOV/2 + float64(i)*c.s.FOV/float64(c.Rays())
}

// Cast marches a single ray from (x, y) at angle and returns the Euclidean
// distance along the ray. Leaving the grid or exceeding MaxDistance yields a
// truncated wall hit at MaxDistance.
func (c *Caster) Cast(g *maze.Grid, x, y, angle float64) Hit {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	mapX, mapY := int(math.Floor(x)), int(math.Floor(y))

	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	stepX, stepY := 1, 1
	sideX, sideY := math.Inf(1), math.Inf(1)
	switch {
	case dirX < 0:
		stepX = -1
		sideX = (x - float64(mapX)) * deltaX
	case dirX > 0:
		sideX = (float64(mapX) + 1 - x) * deltaX
	}
	switch {
	case dirY < 0:
		stepY = -1
		sideY = (y - float64(mapY)) * deltaY
	case dirY > 0:
		sideY = (float64(mapY) + 1 - y) * deltaY
	}

	truncated := Hit{Distance: c.s.MaxDistance, Kind: HitWall, Truncated: true}
	for {
		var dist float64
		var side Side
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			mapX += stepX
			side = SideVertical
		} else {
			dist = sideY
			sideY += deltaY
			mapY += stepY
			side = SideHorizontal
		}
		truncated.Side = side

		if dist > c.s.MaxDistance || math.IsInf(dist, 1) {
			return truncated
		}
		if !g.InBounds(mapX, mapY) {
			return truncated
		}

		switch g.CellAt(mapX, mapY) {
		case maze.Wall:
			return Hit{Distance: dist, Kind: HitWall, Side: side}
		case maze.Exit:
			return Hit{Distance: dist, Kind: HitExit, Side: side}
		}
	}
}

// CastRays casts every ray of a frame from pose. Distances are projected
// onto the view direction so flat walls do not bow.
func (c *Caster) CastRays(g *maze.Grid, pose player.Pose) []Hit {
	hits := make([]Hit, c.Rays())
	for i := range hits {
		angle := c.RayAngle(pose.Angle, i)
		h := c.Cast(g, pose.X, pose.Y, angle)
		if !h.Truncated {
			h.Distance *= math.Cos(angle - pose.Angle)
		}
		hits[i] = h
	}
	return hits
}

// WallHeight maps a perpendicular distance to a column height in rows.
// Height is inversely proportional to distance and clamped to Rows.
func (c *Caster) WallHeight(distance float64) int {
	if distance <= 0 {
		return c.s.Rows
	}
	h := int(float64(c.s.Rows) / distance * c.s.AspectScale)
	if h > c.s.Rows {
		h = c.s.Rows
	}
	return h
}
