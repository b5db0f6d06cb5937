package raycast

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Exit glyphs. The exit ignores distance shading and pulses between these.
const (
	ExitBright = '0'
	ExitDim    = 'O'
)

// exitPulseThreshold selects the bright glyph when the pulse is above it.
const exitPulseThreshold = 0.7

// gradientIndex maps a distance to a gradient position. The square root
// spends more glyphs on nearby walls.
func (c *Caster) gradientIndex(distance float64) int {
	n := len(c.gradient)
	idx := int(math.Sqrt(distance/c.s.MaxDistance) * float64(n-1))
	return core.Clamp(idx, 0, n-1)
}

// WallGlyph returns the base glyph for a hit before per-row shading.
func (c *Caster) WallGlyph(h Hit) rune {
	if h.Kind == HitExit {
		pulse := (math.Sin(h.Distance*3) + 1) / 2
		if pulse > exitPulseThreshold {
			return ExitBright
		}
		return ExitDim
	}
	if c.outOfRange(h) {
		return ' '
	}
	idx := c.gradientIndex(h.Distance)
	if h.Side == SideHorizontal && idx > 0 {
		idx--
	}
	return c.gradient[idx]
}

// Column builds the Rows cells of one ray: ceiling, wall band, floor.
func (c *Caster) Column(h Hit) []core.Cell {
	rows := c.s.Rows
	wall := c.WallHeight(h.Distance)
	ceiling := (rows - wall) / 2
	floor := rows - ceiling - wall

	col := make([]core.Cell, 0, rows)
	glyph := c.WallGlyph(h)

	if h.Kind == HitExit {
		alt := ExitBright
		if glyph == ExitBright {
			alt = ExitDim
		}
		for i := 0; i < ceiling; i++ {
			col = append(col, core.Cell{Rune: ' '})
		}
		for i := 0; i < wall; i++ {
			r, color := glyph, core.ColorBrightGreen
			if wall > 1 {
				pos := float64(i) / float64(wall)
				if pos < 0.3 || pos > 0.7 {
					r, color = alt, core.ColorGreen
				}
			}
			col = append(col, core.Cell{Rune: r, Color: color})
		}
		for i := 0; i < floor; i++ {
			col = append(col, core.Cell{Rune: ' '})
		}
		return col
	}

	n := len(c.gradient)
	for i := 0; i < ceiling; i++ {
		intensity := 1 - float64(i)/float64(ceiling)
		idx := core.Clamp(int(intensity*float64(n-1)), 0, n-1)
		col = append(col, core.Cell{Rune: c.gradient[idx], Color: core.ColorBlue})
	}

	base := c.glyphIndex(glyph)
	shaded := wall > 1 && !c.outOfRange(h)
	for i := 0; i < wall; i++ {
		idx := base
		if shaded && idx > 0 {
			// brighter toward the middle of the band
			vertical := math.Abs(float64(i)/float64(wall)-0.5) * 2
			if vertical < 0.5 {
				idx--
			}
		}
		r := glyph
		if idx >= 0 {
			r = c.gradient[idx]
		}
		col = append(col, core.Cell{Rune: r, Color: c.wallColor(h)})
	}

	for i := 0; i < floor; i++ {
		intensity := float64(i) / float64(floor)
		idx := core.Clamp(int(intensity*float64(n-1)*0.5), 0, n-1)
		col = append(col, core.Cell{Rune: c.gradient[idx], Color: core.ColorDarkGray})
	}
	return col
}

// outOfRange reports walls too far to draw. Their band stays blank.
func (c *Caster) outOfRange(h Hit) bool {
	return h.Truncated || h.Distance >= c.s.MaxDistance
}

// wallColor darkens walls with distance. Horizontal faces are one notch
// brighter, matching the glyph shading.
func (c *Caster) wallColor(h Hit) core.Color {
	level := h.Distance / c.s.MaxDistance
	if h.Side == SideHorizontal {
		level -= 0.25
	}
	return core.Shade(level)
}

func (c *Caster) glyphIndex(r rune) int {
	for i, g := range c.gradient {
		if g == r {
			return i
		}
	}
	return -1
}
