package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Options configures the game model. Nil fields disable the feature.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	DumpDir string
}

// Model is the Bubble Tea model for running a maze game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	back       bool // left with b/esc rather than quit
	runSaved   bool // whether the current run has been recorded
	dumped     bool // whether the failure dump has been written for this run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The game is reset in Run before the program
// starts, since Init has a value receiver.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)

	if isQuit || action == core.ActionBack {
		m.finish("quit")
		m.quitting = true
		m.back = !isQuit
		return m, tea.Quit
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Keep the maze when the game supports it
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart)
	if restarting {
		m.saveRun()
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restarting {
		m.runSaved = false
		m.dumped = false
	}

	if result.DumpRequested {
		m.writeDump("requested")
	}

	// Record the run on game over (once)
	if m.gameState.GameOver {
		if !m.gameState.Won && !m.dumped {
			m.writeDump("error")
			m.dumped = true
		}
		m.saveRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// finish records an unfinished run and writes the exit dump.
func (m *Model) finish(reason string) {
	if !m.gameState.Won && !m.dumped {
		m.writeDump(reason)
		m.dumped = true
	}
	m.saveRun()
}

// saveRun stores the current run once. Runs that never started are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.opts.Store == nil {
		return
	}
	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}

	summary := s.Summary()
	if summary.Ticks == 0 && !summary.Won {
		return
	}
	m.runSaved = true

	if _, err := m.opts.Store.SaveRun(summary); err != nil {
		m.opts.Logger.Warn("cannot save run", "err", err)
		return
	}
	m.opts.Logger.Debug("run saved", "difficulty", summary.Difficulty, "won", summary.Won, "ticks", summary.Ticks)
}

// writeDump writes the game's dump report to the dump directory.
func (m *Model) writeDump(reason string) {
	d, ok := m.game.(registry.Dumper)
	if !ok || m.opts.DumpDir == "" {
		return
	}

	path, err := WriteDump(m.opts.DumpDir, m.game.ID(), d.Dump(reason), time.Now())
	if err != nil {
		m.opts.Logger.Warn("cannot write dump", "err", err)
		return
	}
	m.opts.Logger.Info("dump written", "reason", reason, "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game. It returns true when the
// player left with back rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	model := NewModel(game, cfg, opts)
	game.Reset(model.config)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.back, nil
	}
	return false, nil
}
