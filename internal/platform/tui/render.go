package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Palette maps core colors to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

// DefaultPalette uses the 256-color codes the ray caster's shading was tuned for.
func DefaultPalette() Palette {
	fg := func(code string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return Palette{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorGreen:        fg("2"),
		core.ColorBlue:         fg("4"),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightGreen:  fg("10").Bold(true),
		core.ColorBrightYellow: fg("11"),
		core.ColorBrightWhite:  fg("15"),
		core.ColorGray:         fg("245"),
		core.ColorDarkGray:     fg("238"),
	}
}

var defaultPalette = DefaultPalette()

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := p[color]
			if !ok || color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
