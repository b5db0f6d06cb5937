package maze

import "testing"

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(text)
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}
	return g
}

const openCorridor = "#######\n" +
	"#S   0#\n" +
	"#######\n"

const blockedCorridor = "#######\n" +
	"#S #  0#\n" +
	"########\n"

func TestSolvableExact(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"open corridor", openCorridor, true},
		{"blocked corridor", blockedCorridor, false},
		{"detour", "#####\n#S#0#\n# # #\n#   #\n#####\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustParse(t, tc.text)
			start, _ := g.StartPoint()
			exit, _ := g.ExitPoint()
			if got := Solvable(g, start, exit, SolvePolicy{Mode: SolveExact}); got != tc.expected {
				t.Errorf("Solvable() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSolvableRelaxedAcceptsNearMiss(t *testing.T) {
	g := mustParse(t, blockedCorridor)
	start, _ := g.StartPoint()
	exit, _ := g.ExitPoint()

	strict := SolvePolicy{Mode: SolveExact}
	if Solvable(g, start, exit, strict) {
		t.Fatal("exact check should fail on a blocked corridor")
	}

	relaxed := SolvePolicy{Mode: SolveRelaxed, Radius: 5, StepBudget: 100}
	if !Solvable(g, start, exit, relaxed) {
		t.Error("relaxed check should accept a start within the radius")
	}

	tight := SolvePolicy{Mode: SolveRelaxed, Radius: 2, StepBudget: 100}
	if Solvable(g, start, exit, tight) {
		t.Error("relaxed check with a small radius should fail")
	}
}

func TestSolvableRelaxedRespectsBudget(t *testing.T) {
	g := NewGrid(40, 3)
	for x := 1; x < 39; x++ {
		g.Set(x, 1, Empty)
	}
	g.Set(1, 1, Start)
	g.Set(38, 1, Exit)

	start := Point{1, 1}
	exit := Point{38, 1}

	if Solvable(g, start, exit, SolvePolicy{Mode: SolveRelaxed, Radius: 1, StepBudget: 5}) {
		t.Error("a tiny step budget should stop the search early")
	}
	if !Solvable(g, start, exit, SolvePolicy{Mode: SolveRelaxed, Radius: 1, StepBudget: 0}) {
		t.Error("a zero budget means the full grid area")
	}
}

func TestSolvableOutOfBounds(t *testing.T) {
	g := mustParse(t, openCorridor)
	if Solvable(g, Point{-1, 0}, Point{5, 1}, DefaultSolvePolicy()) {
		t.Error("out-of-bounds start should not be solvable")
	}
}

func TestReachableFromWall(t *testing.T) {
	g := mustParse(t, openCorridor)
	for i, v := range Reachable(g, Point{0, 0}) {
		if v {
			t.Fatalf("cell %d marked reachable from a wall", i)
		}
	}
}

func TestSealUnreachable(t *testing.T) {
	g := mustParse(t, "#######\n" +
		"#S # 0#\n" +
		"#######\n")
	g.Set(5, 1, Empty)
	g.Set(2, 1, Exit)

	sealed := SealUnreachable(g, Point{1, 1})
	if sealed != 2 {
		t.Errorf("SealUnreachable() = %d, expected 2", sealed)
	}
	if g.CellAt(4, 1) != Wall || g.CellAt(5, 1) != Wall {
		t.Error("pocket behind the wall should be sealed")
	}
	if g.CellAt(2, 1) != Exit {
		t.Error("reachable cells must be left alone")
	}
}

func TestShortestPath(t *testing.T) {
	g := mustParse(t, "#####\n"+
		"#S#0#\n"+
		"# # #\n"+
		"#   #\n"+
		"#####\n")
	start, _ := g.StartPoint()
	exit, _ := g.ExitPoint()

	path := ShortestPath(g, start, exit)
	if len(path) != 7 {
		t.Fatalf("path length = %d, expected 7: %v", len(path), path)
	}
	if path[0] != start || path[len(path)-1] != exit {
		t.Errorf("path should run from %v to %v, got %v", start, exit, path)
	}
	for i := 1; i < len(path); i++ {
		if path[i].Manhattan(path[i-1]) != 1 {
			t.Fatalf("path step %d is not adjacent: %v -> %v", i, path[i-1], path[i])
		}
		if !g.CellAt(path[i].X, path[i].Y).Passable() {
			t.Fatalf("path crosses a wall at %v", path[i])
		}
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := mustParse(t, blockedCorridor)
	start, _ := g.StartPoint()
	exit, _ := g.ExitPoint()

	if path := ShortestPath(g, start, exit); path != nil {
		t.Errorf("expected nil path, got %v", path)
	}
}

func TestShortestPathToSelf(t *testing.T) {
	g := mustParse(t, openCorridor)
	start, _ := g.StartPoint()

	path := ShortestPath(g, start, start)
	if len(path) != 1 || path[0] != start {
		t.Errorf("path to self = %v, expected [%v]", path, start)
	}
}

func TestParseSolveMode(t *testing.T) {
	tests := []struct {
		in       string
		expected SolveMode
	}{
		{"exact", SolveExact},
		{"relaxed", SolveRelaxed},
		{"", SolveExact},
		{"bogus", SolveExact},
	}
	for _, tc := range tests {
		if got := ParseSolveMode(tc.in); got != tc.expected {
			t.Errorf("ParseSolveMode(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
