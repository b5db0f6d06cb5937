package raycast

import (
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/player"
)

// Frame is a rendered view, row-major.
type Frame struct {
	Width  int
	Height int
	Cells  []core.Cell
}

// At returns the cell at (x, y), or a blank cell when out of range.
func (f Frame) At(x, y int) core.Cell {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return core.Cell{Rune: ' '}
	}
	return f.Cells[y*f.Width+x]
}

// String returns the frame as plain text, one line per row without a
// trailing newline.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.Width + 1) * f.Height)
	for y := 0; y < f.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < f.Width; x++ {
			sb.WriteRune(f.Cells[y*f.Width+x].Rune)
		}
	}
	return sb.String()
}

// Draw copies the frame onto dst with its top-left corner at (ox, oy).
func (f Frame) Draw(dst *core.Screen, ox, oy int) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			dst.SetCell(ox+x, oy+y, f.Cells[y*f.Width+x])
		}
	}
}

// BuildFrame casts all rays from pose and assembles the frame. Each ray
// fills two adjacent columns; an odd leftover column stays blank.
func (c *Caster) BuildFrame(g *maze.Grid, pose player.Pose) Frame {
	f := Frame{Width: c.s.Columns, Height: c.s.Rows}
	f.Cells = make([]core.Cell, f.Width*f.Height)
	for i := range f.Cells {
		f.Cells[i] = core.Cell{Rune: ' '}
	}

	for i, h := range c.CastRays(g, pose) {
		col := c.Column(h)
		x := i * 2
		for y, cell := range col {
			f.Cells[y*f.Width+x] = cell
			if x+1 < f.Width {
				f.Cells[y*f.Width+x+1] = cell
			}
		}
	}
	return f
}

// RenderFrame returns the first-person view from pose as text.
func (c *Caster) RenderFrame(g *maze.Grid, pose player.Pose) string {
	return c.BuildFrame(g, pose).String()
}

// DrawFrame renders the view straight into dst at (ox, oy).
func (c *Caster) DrawFrame(dst *core.Screen, ox, oy int, g *maze.Grid, pose player.Pose) {
	c.BuildFrame(g, pose).Draw(dst, ox, oy)
}
