package maze

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func smallParams(seed int64) Params {
	return Params{
		Width:    10,
		Height:   10,
		RoomSize: 2,
		Seed:     seed,
		Solve:    DefaultSolvePolicy(),
	}
}

// assertPlayable checks the invariants every generated grid must satisfy.
func assertPlayable(t *testing.T, g *Grid) {
	t.Helper()

	if n := g.Count(Start); n != 1 {
		t.Fatalf("expected exactly one start, found %d", n)
	}
	if n := g.Count(Exit); n != 1 {
		t.Fatalf("expected exactly one exit, found %d", n)
	}

	start, _ := g.StartPoint()
	exit, _ := g.ExitPoint()
	if !Solvable(g, start, exit, SolvePolicy{Mode: SolveExact}) {
		t.Fatal("exit is not reachable from start")
	}
}

func TestGenerateSmallScenario(t *testing.T) {
	g, err := Generate(smallParams(42))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	assertPlayable(t, g)

	text := g.Text()
	if strings.Count(text, "S") != 1 {
		t.Errorf("text dump should contain one 'S':\n%s", text)
	}
	if strings.Count(text, "0") != 1 {
		t.Errorf("text dump should contain one '0':\n%s", text)
	}
	if lines := strings.Count(text, "\n"); lines != 10 {
		t.Errorf("text dump has %d lines, expected 10", lines)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	sizes := []Params{
		{Width: 10, Height: 10, RoomSize: 2},
		{Width: 50, Height: 50, RoomSize: 3},
		{Width: 100, Height: 100, RoomSize: 5},
	}

	for _, p := range sizes {
		p.Seed = 12345
		g1, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate(%dx%d) failed: %v", p.Width, p.Height, err)
		}
		g2, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate(%dx%d) failed: %v", p.Width, p.Height, err)
		}
		if !g1.Equal(g2) {
			t.Errorf("%dx%d: same seed produced different grids", p.Width, p.Height)
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	p := Params{Width: 50, Height: 50, RoomSize: 3, Seed: 1}
	g1, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	p.Seed = 2
	g2, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if g1.Equal(g2) {
		t.Error("different seeds should produce different grids")
	}
}

func TestAttemptIsPure(t *testing.T) {
	p := smallParams(0)
	g1, err1 := Attempt(99, p)
	g2, err2 := Attempt(99, p)

	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("Attempt outcome differs: %v vs %v", err1, err2)
	}
	if err1 == nil && !g1.Equal(g2) {
		t.Error("Attempt with the same seed produced different grids")
	}
}

func TestGenerateDifficultyTiers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large grids in short mode")
	}

	tests := []struct {
		name string
		p    Params
	}{
		{"easy", Params{Width: 50, Height: 50, RoomSize: 3}},
		{"normal", Params{Width: 100, Height: 100, RoomSize: 5}},
		{"hard", Params{Width: 200, Height: 200, RoomSize: 7}},
		{"hardcore", Params{Width: 400, Height: 400, RoomSize: 9}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.p.Seed = 7
			g, err := Generate(tc.p)
			if err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}
			assertPlayable(t, g)
		})
	}
}

func TestGenerateSealsUnreachableCells(t *testing.T) {
	g, err := Generate(Params{Width: 50, Height: 50, RoomSize: 3, Seed: 5})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	start, _ := g.StartPoint()
	reached := Reachable(g, start)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.CellAt(x, y).Passable() && !reached[y*g.Width()+x] {
				t.Fatalf("open cell (%d, %d) is not reachable from start", x, y)
			}
		}
	}
}

func TestGenerateBoundsFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for i := 0; i < 40; i++ {
		p := Params{
			Width:    10 + rng.Intn(40),
			Height:   10 + rng.Intn(40),
			RoomSize: 2 + rng.Intn(2),
			Seed:     rng.Int63(),
		}

		g, err := Generate(p)
		if err != nil {
			if !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("%dx%d room %d: unexpected error type: %v", p.Width, p.Height, p.RoomSize, err)
			}
			continue
		}

		w, h := g.Dimensions()
		if w != p.Width || h != p.Height {
			t.Fatalf("grid is %dx%d, expected %dx%d", w, h, p.Width, p.Height)
		}
		assertPlayable(t, g)
	}
}

func TestGenerateTooSmallFails(t *testing.T) {
	p := Params{Width: 3, Height: 3, RoomSize: 2, Seed: 1}

	g, err := Generate(p)
	if g != nil {
		t.Fatal("expected no grid for a 3x3 request")
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected the last reason to be ErrInvalidParams, got %v", err)
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Attempts != MaxAttempts(3, 3) {
		t.Errorf("Attempts = %d, expected %d", genErr.Attempts, MaxAttempts(3, 3))
	}
}

func TestGenerateInvalidRoomSize(t *testing.T) {
	_, err := Generate(Params{Width: 20, Height: 20, RoomSize: 1})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateTooLarge(t *testing.T) {
	_, err := Generate(Params{Width: 5000, Height: 5000, RoomSize: 3, MaxCells: 1000})
	if !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("expected ErrGridTooLarge, got %v", err)
	}
	if errors.Is(err, ErrGenerationFailed) {
		t.Error("an oversized grid should not be reported as exhausted attempts")
	}
}

func TestGenerateRelaxedMode(t *testing.T) {
	p := Params{
		Width:    60,
		Height:   60,
		RoomSize: 3,
		Seed:     11,
		Solve:    SolvePolicy{Mode: SolveRelaxed, Radius: 20, StepBudget: 150000},
	}

	g, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if g.Count(Start) != 1 || g.Count(Exit) != 1 {
		t.Fatal("relaxed grids still need exactly one start and one exit")
	}

	start, _ := g.StartPoint()
	exit, _ := g.ExitPoint()
	reached := Reachable(g, start)

	near := false
	for y := 0; y < g.Height() && !near; y++ {
		for x := 0; x < g.Width(); x++ {
			if reached[y*g.Width()+x] && exit.Manhattan(Point{x, y}) < p.Solve.Radius {
				near = true
				break
			}
		}
	}
	if !near {
		t.Error("relaxed grid should reach within the radius of the exit")
	}
}

func TestMinDimension(t *testing.T) {
	if MinDimension(2) > 10 {
		t.Errorf("MinDimension(2) = %d, 10x10 grids must be accepted", MinDimension(2))
	}
	if err := (Params{Width: 9, Height: 9, RoomSize: 3}).validate(); err == nil {
		t.Error("9x9 with room size 3 should be rejected")
	}
}
