package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// stubGame finishes after a fixed number of ticks.
type stubGame struct {
	ticks   uint64
	endAt   uint64
	win     bool
	over    bool
	resets  int
	resized []int
}

func (g *stubGame) ID() string    { return "maze" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
	g.over = false
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{})
	}
	if !g.over {
		g.ticks++
		g.over = g.endAt > 0 && g.ticks >= g.endAt
	}
	return core.StepResult{State: g.State(), DumpRequested: in.Has(core.ActionDump)}
}

func (g *stubGame) Render(s *core.Screen) { s.DrawText(0, 0, "stub") }

func (g *stubGame) State() core.GameState {
	return core.GameState{Ticks: g.ticks, GameOver: g.over, Won: g.over && g.win}
}

func (g *stubGame) Summary() core.RunSummary {
	return core.RunSummary{
		Mode:       "play",
		Difficulty: "easy",
		Width:      50,
		Height:     50,
		Seed:       7,
		Ticks:      g.ticks,
		Elapsed:    time.Duration(g.ticks) * time.Second / 30,
		Won:        g.over && g.win,
	}
}

func (g *stubGame) Dump(reason string) string { return "report: " + reason }

func (g *stubGame) Resize(w, h int) { g.resized = append(g.resized, w, h) }

type testEnv struct {
	store   *storage.Store
	dumpDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return testEnv{store: store, dumpDir: filepath.Join(dir, "dumps")}
}

func (e testEnv) model(g *stubGame) Model {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
	return NewModel(g, cfg, Options{Store: e.store, DumpDir: e.dumpDir})
}

func (e testEnv) dumps(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.dumpDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	var names []string
	for _, de := range entries {
		names = append(names, de.Name())
	}
	return names
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelSavesWonRunOnce(t *testing.T) {
	env := newTestEnv(t)
	g := &stubGame{endAt: 3, win: true}
	m := env.model(g)

	m = tick(t, m, 6)

	runs, err := env.store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if !runs[0].Won || runs[0].Ticks != 3 {
		t.Errorf("saved run = %+v, expected a win after 3 ticks", runs[0])
	}
	if names := env.dumps(t); len(names) != 0 {
		t.Errorf("a won run should not write dumps, found %v", names)
	}
}

func TestModelDumpsFailedRun(t *testing.T) {
	env := newTestEnv(t)
	g := &stubGame{endAt: 2}
	m := env.model(g)

	m = tick(t, m, 5)

	names := env.dumps(t)
	if len(names) != 1 {
		t.Fatalf("expected one dump for the failed run, got %v", names)
	}
	data, err := os.ReadFile(filepath.Join(env.dumpDir, names[0]))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "report: error" {
		t.Errorf("dump content = %q", data)
	}

	// Quitting after the failure must not dump again
	m, _ = press(t, m, runeKey('q'))
	if got := env.dumps(t); len(got) != 1 {
		t.Errorf("quit after failure wrote another dump: %v", got)
	}
}

func TestModelQuitRecordsAbandonedRun(t *testing.T) {
	env := newTestEnv(t)
	g := &stubGame{}
	m := env.model(g)

	m = tick(t, m, 4)
	m, cmd := press(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !m.quitting || m.back {
		t.Errorf("quitting=%v back=%v, expected quit without back", m.quitting, m.back)
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	runs, _ := env.store.RecentRuns(10)
	if len(runs) != 1 || runs[0].Won || runs[0].Ticks != 4 {
		t.Fatalf("expected one abandoned run of 4 ticks, got %+v", runs)
	}
	names := env.dumps(t)
	if len(names) != 1 || !strings.HasPrefix(names[0], "maze_") {
		t.Errorf("expected one maze_ dump on quit, got %v", names)
	}
}

func TestModelBackKey(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(&stubGame{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.back {
		t.Error("esc should leave with back set")
	}
}

func TestModelSkipsUnstartedRun(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(&stubGame{})

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, _ := env.store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("a run with no ticks should not be stored, got %d", len(runs))
	}
}

func TestModelRestartSavesPreviousRun(t *testing.T) {
	env := newTestEnv(t)
	g := &stubGame{}
	m := env.model(g)

	m = tick(t, m, 5)
	m, _ = press(t, m, runeKey('r'))
	m = tick(t, m, 1)
	if g.resets != 1 {
		t.Fatalf("expected the game to restart once, got %d", g.resets)
	}
	m = tick(t, m, 2)
	press(t, m, runeKey('q'))

	runs, _ := env.store.RecentRuns(10)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs (restarted + quit), got %d", len(runs))
	}
	// Newest first
	if runs[0].Ticks != 3 || runs[1].Ticks != 5 {
		t.Errorf("run ticks = %d, %d; expected 3, 5", runs[0].Ticks, runs[1].Ticks)
	}
}

func TestModelRequestedDump(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(&stubGame{})

	m, _ = press(t, m, runeKey('l'))
	tick(t, m, 1)

	names := env.dumps(t)
	if len(names) != 1 {
		t.Fatalf("expected one requested dump, got %v", names)
	}
	data, _ := os.ReadFile(filepath.Join(env.dumpDir, names[0]))
	if string(data) != "report: requested" {
		t.Errorf("dump content = %q", data)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	env := newTestEnv(t)
	g := &stubGame{}
	m := env.model(g)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resets != 0 {
		t.Error("resize should not reset a game that can resize")
	}
	if len(g.resized) != 2 || g.resized[0] != 100 || g.resized[1] != 30 {
		t.Errorf("Resize() calls = %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen is %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelWithoutStore(t *testing.T) {
	g := &stubGame{endAt: 1, win: true}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 20, ScreenH: 5}, Options{})

	// Must not panic with storage and dumps disabled
	m = tick(t, m, 2)
	press(t, m, runeKey('q'))

	if m.config.Seed == 0 {
		t.Error("a zero seed should be replaced")
	}
	if m.config.TickRate != core.DefaultConfig().TickRate {
		t.Errorf("TickRate = %d, expected the default", m.config.TickRate)
	}
}
