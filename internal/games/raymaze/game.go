// Package raymaze implements the first-person maze game and its demo mode.
package raymaze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/player"
	"github.com/vovakirdan/tui-maze/internal/raycast"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModePlay Mode = "play"
	ModeDemo Mode = "demo"
)

const (
	hudHeight   = 2
	minViewCols = 20
	minViewRows = 8

	customDifficulty = "custom"
)

// ErrNoRoute is reported when the demo walker finds no path to the exit.
var ErrNoRoute = errors.New("no route from start to exit")

// Game implements the maze game.
type Game struct {
	mode   Mode
	cfg    config.MazeConfig
	diff   string
	text   string // fixed layout; empty means generate
	logger *log.Logger
	gen    *maze.Generator
	mover  player.Mover
	now    func() time.Time

	rng      *rand.Rand
	seed     int64
	tick     uint64
	tickRate int

	grid    *maze.Grid
	profile config.DifficultyProfile
	pose    player.Pose
	caster  *raycast.Caster
	walker  *player.Walker
	lastErr error

	walkEvery  int
	walkTicker int

	// Screen dimensions
	screenW int
	screenH int
	viewX   int

	// Game state flags
	won         bool
	failed      bool
	paused      bool
	tooSmall    bool
	showMinimap bool
}

// New creates a game in the given mode.
func New(mode Mode, opts registry.Options) *Game {
	opts = opts.WithDefaults()
	m := player.Mover{
		MoveSpeed:     opts.Config.Player.MoveSpeed,
		RotationSpeed: opts.Config.Player.RotationSpeed,
		Margin:        opts.Config.Player.CollisionMargin,
	}
	return &Game{
		mode:        mode,
		cfg:         opts.Config,
		diff:        opts.Difficulty,
		text:        opts.MapText,
		logger:      opts.Logger,
		gen:         maze.NewGenerator(opts.Logger),
		mover:       m,
		now:         time.Now,
		showMinimap: true,
	}
}

func init() {
	registry.Register("maze", func(opts registry.Options) registry.Game {
		return New(ModePlay, opts)
	})
	registry.Register("maze_demo", func(opts registry.Options) registry.Game {
		return New(ModeDemo, opts)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeDemo {
		return "maze_demo"
	}
	return "maze"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDemo {
		return "Maze (Demo)"
	}
	return "Maze"
}

// Grid returns the current maze, or nil when none could be built.
func (g *Game) Grid() *maze.Grid { return g.grid }

// Pose returns the player pose.
func (g *Game) Pose() player.Pose { return g.pose }

// Profile returns the difficulty the current maze was built with. It differs
// from the requested one after a size fallback.
func (g *Game) Profile() config.DifficultyProfile { return g.profile }

// Err returns the last error that stopped the run, if any.
func (g *Game) Err() error { return g.lastErr }

// Reset builds a new maze and places the player on its start cell.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.won = false
	g.failed = false
	g.paused = false
	g.lastErr = nil
	g.walker = nil
	g.walkTicker = 0

	g.Resize(cfg.ScreenW, cfg.ScreenH)

	if err := g.loadMaze(); err != nil {
		g.fail(err)
		return
	}

	pose, err := player.Spawn(g.grid)
	if err != nil {
		g.fail(fmt.Errorf("spawn: %w", err))
		return
	}
	if _, err := g.grid.ExitPoint(); err != nil {
		g.fail(err)
		return
	}
	g.pose = pose

	if g.mode == ModeDemo {
		g.walker = player.NewWalker(pose, g.mover)
		g.walkEvery = max(1, g.tickRate/max(1, g.cfg.Player.DemoStepsPerSecond))
	}
}

// loadMaze parses the fixed layout or generates one, stepping down to smaller
// profiles while generation keeps failing.
func (g *Game) loadMaze() error {
	g.grid = nil

	if g.text != "" {
		grid, err := maze.ParseGrid(g.text)
		if err != nil {
			return fmt.Errorf("load map: %w", err)
		}
		w, h := grid.Dimensions()
		g.grid = grid
		g.profile = config.DifficultyProfile{Name: customDifficulty, Width: w, Height: h}
		return nil
	}

	chain, err := g.cfg.Fallbacks(g.diff)
	if err != nil {
		return err
	}
	g.profile = chain[0]

	for i, p := range chain {
		grid, err := g.gen.Generate(g.params(p))
		if err == nil {
			g.grid = grid
			g.profile = p
			return nil
		}
		if !errors.Is(err, maze.ErrGenerationFailed) || i == len(chain)-1 {
			return err
		}
		g.logger.Warn("generation failed, trying a smaller maze",
			"difficulty", p.Name, "next", chain[i+1].Name, "err", err)
	}
	return nil
}

func (g *Game) params(p config.DifficultyProfile) maze.Params {
	gc := g.cfg.Generator
	return maze.Params{
		Width:    p.Width,
		Height:   p.Height,
		RoomSize: p.RoomSize,
		Seed:     g.seed,
		MaxCells: gc.MaxCells,
		Solve: maze.SolvePolicy{
			Mode:       maze.ParseSolveMode(gc.Solvability),
			Radius:     gc.RelaxedRadius,
			StepBudget: gc.RelaxedStepBudget,
		},
	}
}

func (g *Game) fail(err error) {
	g.failed = true
	g.lastErr = err
	g.logger.Error("maze unavailable", "mode", g.mode, "difficulty", g.diff, "err", err)
}

// Resize fits the view to a new screen size. The maze is kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height

	cols := min(g.cfg.Render.Columns, width)
	rows := min(g.cfg.Render.Rows, height-hudHeight)
	if cols < minViewCols || rows < minViewRows {
		g.tooSmall = true
		return
	}
	g.tooSmall = false
	g.viewX = (width - cols) / 2

	g.caster = raycast.New(raycast.Settings{
		Columns:     cols,
		Rows:        rows,
		FOV:         g.cfg.Render.FOV,
		MaxDistance: g.cfg.Render.MaxDistance,
		AspectScale: g.cfg.Render.AspectScale,
		Gradient:    g.cfg.Render.Gradient,
	})
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	result := core.StepResult{DumpRequested: input.Has(core.ActionDump)}

	// Restart is allowed at any time and always builds a new maze
	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		result.State = g.State()
		return result
	}

	if input.Has(core.ActionMinimap) {
		g.showMinimap = !g.showMinimap
	}

	over := g.won || g.failed
	if input.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	if over || g.paused || g.tooSmall {
		result.State = g.State()
		return result
	}

	g.tick++
	if g.mode == ModeDemo {
		g.stepDemo()
	} else {
		g.stepPlayer(input)
	}

	if player.AtExit(g.pose, g.grid) {
		g.won = true
		g.logger.Info("exit reached", "mode", g.mode, "difficulty", g.profile.Name, "ticks", g.tick)
	}

	result.State = g.State()
	return result
}

// stepPlayer applies every movement action held this tick.
func (g *Game) stepPlayer(input core.InputFrame) {
	if input.Has(core.ActionTurnLeft) {
		g.mover.TurnLeft(&g.pose)
	}
	if input.Has(core.ActionTurnRight) {
		g.mover.TurnRight(&g.pose)
	}
	if input.Has(core.ActionForward) {
		g.mover.Forward(&g.pose, g.grid)
	}
	if input.Has(core.ActionBackward) {
		g.mover.Backward(&g.pose, g.grid)
	}
	if input.Has(core.ActionStrafeLeft) {
		g.mover.StrafeLeft(&g.pose, g.grid)
	}
	if input.Has(core.ActionStrafeRight) {
		g.mover.StrafeRight(&g.pose, g.grid)
	}
}

// stepDemo advances the walker at its own rate.
func (g *Game) stepDemo() {
	g.walkTicker++
	if g.walkTicker < g.walkEvery {
		return
	}
	g.walkTicker = 0

	g.walker.Update(g.grid)
	g.pose = g.walker.Pose()

	if g.walker.State() == player.WalkerCompleted && !g.walker.Found() {
		g.failed = true
		g.lastErr = ErrNoRoute
		g.logger.Warn("demo walker found no route", "difficulty", g.profile.Name)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Ticks:    g.tick,
		GameOver: g.won || g.failed,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Elapsed returns the in-game time of the current run.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.tick) * time.Second / time.Duration(g.tickRate)
}

// Summary describes the current run for the history store.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Mode:       string(g.mode),
		Difficulty: g.profile.Name,
		Width:      g.profile.Width,
		Height:     g.profile.Height,
		Seed:       g.seed,
		Ticks:      g.tick,
		Elapsed:    g.Elapsed(),
		Won:        g.won,
	}
}
