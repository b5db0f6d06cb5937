package raycast

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/player"
)

func TestArrow(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{3 * math.Pi / 2, '↑'},
		{-math.Pi / 2, '↑'},
		{math.Pi / 3, '↓'},
		{7 * math.Pi / 4, '→'},
	}
	for _, tc := range tests {
		if got := Arrow(tc.angle); got != tc.expected {
			t.Errorf("Arrow(%f) = %q, expected %q", tc.angle, got, tc.expected)
		}
	}
}

func TestMinimapLayout(t *testing.T) {
	g, err := maze.ParseGrid("#####\n" +
		"#S  #\n" +
		"#  0#\n" +
		"#####\n")
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}

	const radius = 3
	pose := player.Pose{X: 2.5, Y: 1.5, Angle: math.Pi}
	cells := Minimap(g, pose, radius)

	w, h := MinimapSize(radius)
	if len(cells) != h || len(cells[0]) != w {
		t.Fatalf("minimap is %dx%d, expected %dx%d", len(cells[0]), len(cells), w, h)
	}

	// The player cell sits at (2*radius, radius) in the window.
	at := func(x, y int) rune {
		return cells[y-1+radius][x-2+radius*2].Rune
	}
	if at(2, 1) != '←' {
		t.Errorf("player cell = %q, expected '←'", at(2, 1))
	}
	if at(1, 1) != 'S' {
		t.Errorf("start cell = %q, expected 'S'", at(1, 1))
	}
	if at(3, 2) != 'E' {
		t.Errorf("exit cell = %q, expected 'E'", at(3, 2))
	}
	if at(0, 0) != '#' {
		t.Errorf("wall cell = %q, expected '#'", at(0, 0))
	}
	if at(1, 2) != ' ' {
		t.Errorf("empty cell = %q, expected blank", at(1, 2))
	}

	// Window rows above the grid are out of bounds.
	for _, c := range cells[0] {
		if c.Rune != ' ' {
			t.Fatalf("out-of-bounds row should be blank, got %q", c.Rune)
		}
	}
}

func TestRenderMinimapText(t *testing.T) {
	g := maze.NewGrid(30, 30)
	text := RenderMinimap(g, player.Pose{X: 15.5, Y: 15.5}, 5)

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("minimap has %d lines, expected 10", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 20 {
			t.Errorf("line %d has %d runes, expected 20", i, n)
		}
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("every minimap row ends with a newline")
	}
}

func TestMinimapFarOutsideGrid(t *testing.T) {
	g := maze.NewGrid(5, 5)
	text := RenderMinimap(g, player.Pose{X: -50, Y: -50}, 2)

	if strings.TrimSpace(text) != "" {
		t.Errorf("minimap far outside the grid should be blank, got %q", text)
	}
}
