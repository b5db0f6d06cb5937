package raycast

import (
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/player"
)

// Arrow returns the minimap glyph for a heading, by quadrant. Angles grow
// clockwise on screen, so 90 degrees points down.
func Arrow(angle float64) rune {
	deg := player.Pose{Angle: angle}.Degrees()
	switch {
	case deg >= 45 && deg < 135:
		return '↓'
	case deg >= 135 && deg < 225:
		return '←'
	case deg >= 225 && deg < 315:
		return '↑'
	default:
		return '→'
	}
}

// MinimapSize returns the width and height of a minimap for radius. The
// window is twice as wide as tall to offset tall character cells.
func MinimapSize(radius int) (width, height int) {
	return radius * 4, radius * 2
}

// Minimap returns the cells of a top-down window centered on pose. Cells
// outside the grid render blank.
func Minimap(g *maze.Grid, pose player.Pose, radius int) [][]core.Cell {
	w, h := MinimapSize(radius)
	pc := pose.Cell()
	rows := make([][]core.Cell, h)

	for row := 0; row < h; row++ {
		y := pc.Y - radius + row
		rows[row] = make([]core.Cell, w)
		for col := 0; col < w; col++ {
			x := pc.X - radius*2 + col
			rows[row][col] = minimapCell(g, pose, pc, x, y)
		}
	}
	return rows
}

func minimapCell(g *maze.Grid, pose player.Pose, pc maze.Point, x, y int) core.Cell {
	if !g.InBounds(x, y) {
		return core.Cell{Rune: ' '}
	}
	if x == pc.X && y == pc.Y {
		return core.Cell{Rune: Arrow(pose.Angle), Color: core.ColorBrightYellow}
	}
	switch g.CellAt(x, y) {
	case maze.Wall:
		return core.Cell{Rune: '#', Color: core.ColorGray}
	case maze.Exit:
		return core.Cell{Rune: 'E', Color: core.ColorBrightGreen}
	case maze.Start:
		return core.Cell{Rune: 'S', Color: core.ColorCyan}
	default:
		return core.Cell{Rune: ' '}
	}
}

// RenderMinimap returns the minimap as text, each row ending in a newline.
func RenderMinimap(g *maze.Grid, pose player.Pose, radius int) string {
	var sb strings.Builder
	for _, row := range Minimap(g, pose, radius) {
		for _, cell := range row {
			sb.WriteRune(cell.Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DrawMinimap draws the minimap into dst with its top-left corner at (ox, oy).
func DrawMinimap(dst *core.Screen, ox, oy int, g *maze.Grid, pose player.Pose, radius int) {
	for y, row := range Minimap(g, pose, radius) {
		for x, cell := range row {
			dst.SetCell(ox+x, oy+y, cell)
		}
	}
}
