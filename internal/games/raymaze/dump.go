package raymaze

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/tui-maze/internal/raycast"
)

// Dump returns a plain-text diagnostic report of the current run: status,
// last error, last rendered view, player pose, minimap, view settings and
// the full maze.
func (g *Game) Dump(reason string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Maze dump (%s) ===\n", g.now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Reason: %s\n", reason)
	fmt.Fprintf(&b, "Status: %s\n", g.status())
	fmt.Fprintf(&b, "Error: %s\n", dumpErr(g.lastErr))

	if g.grid == nil {
		b.WriteString("\nNo maze was built.\n")
		g.writeSystem(&b)
		return b.String()
	}

	caster := g.caster
	if caster == nil {
		caster = raycast.New(raycast.Settings{})
	}

	b.WriteString("\n--- Last frame ---\n")
	b.WriteString(caster.RenderFrame(g.grid, g.pose))
	b.WriteString("\n")

	b.WriteString("\n--- Player ---\n")
	fmt.Fprintf(&b, "Position: (%.2f, %.2f)\n", g.pose.X, g.pose.Y)
	fmt.Fprintf(&b, "Angle: %.2f°\n", g.pose.Degrees())
	fmt.Fprintf(&b, "Found exit: %s\n", yesNo(g.won))
	if g.walker != nil {
		fmt.Fprintf(&b, "Walker: %s, step %d/%d, %d%%\n",
			g.walker.State(), g.walker.Step(), max(0, len(g.walker.Path())-1), g.walker.Progress())
	}

	b.WriteString("\n--- Minimap ---\n")
	b.WriteString(raycast.RenderMinimap(g.grid, g.pose, max(1, g.cfg.Render.MinimapRadius)))

	g.writeSystem(&b)

	b.WriteString("\n--- Maze ---\n")
	b.WriteString(g.grid.Text())
	return b.String()
}

func (g *Game) writeSystem(b *strings.Builder) {
	s := raycast.New(raycast.Settings{
		FOV:         g.cfg.Render.FOV,
		MaxDistance: g.cfg.Render.MaxDistance,
	}).Settings()
	if g.caster != nil {
		s = g.caster.Settings()
	}

	b.WriteString("\n--- System ---\n")
	fmt.Fprintf(b, "Mode: %s\n", g.mode)
	fmt.Fprintf(b, "Difficulty: %s\n", g.profile.Name)
	fmt.Fprintf(b, "Maze size: %dx%d\n", g.profile.Width, g.profile.Height)
	fmt.Fprintf(b, "Room size: %d\n", g.profile.RoomSize)
	fmt.Fprintf(b, "Seed: %d\n", g.seed)
	fmt.Fprintf(b, "Ticks: %d (%s)\n", g.tick, formatElapsed(g.Elapsed()))
	fmt.Fprintf(b, "View: %dx%d\n", s.Columns, s.Rows)
	fmt.Fprintf(b, "FOV: %.0f°\n", s.FOV*180/math.Pi)
	fmt.Fprintf(b, "Max render distance: %g\n", s.MaxDistance)
}

func (g *Game) status() string {
	st := g.Snapshot().State
	if st == StatePlaying {
		return "in progress"
	}
	return strings.ReplaceAll(string(st), "_", " ")
}

func dumpErr(err error) string {
	if err == nil {
		return "none"
	}
	return err.Error()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
