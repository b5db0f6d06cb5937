package raymaze

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/raycast"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw HUD
	g.renderHUD(dst)

	// Handle special states
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Resize to at least %dx%d", minViewCols, minViewRows+hudHeight))
		return
	}
	if g.grid == nil {
		g.renderOverlay(dst, "No maze: "+errText(g.lastErr), "R: try a new seed  Q: quit")
		return
	}

	g.caster.DrawFrame(dst, g.viewX, hudHeight, g.grid, g.pose)

	if g.showMinimap {
		g.renderMinimap(dst)
	}

	// Draw overlays
	switch {
	case g.won:
		g.renderOverlay(dst, "You found the exit!",
			fmt.Sprintf("Time %s  R: new maze  Q: quit", formatElapsed(g.Elapsed())))
	case g.failed:
		g.renderOverlay(dst, "Stopped: "+errText(g.lastErr), "R: new maze  Q: quit")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	switch {
	case g.grid == nil:
		hud = fmt.Sprintf(" %s | %s", g.Title(), g.diff)
	case g.mode == ModeDemo && g.walker != nil:
		last := max(0, len(g.walker.Path())-1)
		hud = fmt.Sprintf(" Demo | %s | %d%% | Pos (%.1f, %.1f) | Angle %.0f° | Step %d/%d",
			g.walker.State(), g.walker.Progress(), g.pose.X, g.pose.Y, g.pose.Degrees(),
			g.walker.Step(), last)
	default:
		hud = fmt.Sprintf(" Maze | %s %dx%d | Pos (%.1f, %.1f) | Angle %.0f° | Time %s",
			g.profile.Name, g.profile.Width, g.profile.Height,
			g.pose.X, g.pose.Y, g.pose.Degrees(), formatElapsed(g.Elapsed()))
	}

	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderMinimap draws the minimap in the top-right corner of the view,
// shrinking the radius until it fits.
func (g *Game) renderMinimap(dst *core.Screen) {
	view := g.caster.Settings()
	radius := g.cfg.Render.MinimapRadius
	for radius > 0 {
		w, h := raycast.MinimapSize(radius)
		if w+2 <= view.Columns/2 && h+2 <= view.Rows {
			break
		}
		radius--
	}
	if radius <= 0 {
		return
	}

	w, h := raycast.MinimapSize(radius)
	frame := core.NewRect(g.viewX, hudHeight, view.Columns, view.Rows)
	box := frame.TopRight(w+2, h+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	raycast.DrawMinimap(dst, box.X+1, box.Y+1, g.grid, g.pose, radius)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := min(maxLen+4, dst.Width())
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
