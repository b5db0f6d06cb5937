// Package registry maps mode IDs to game factories. Modes register from
// init() so the CLI and the menu can list and build them by name.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrUnknownMode is returned by Create for IDs nobody registered.
var ErrUnknownMode = errors.New("unknown mode")

// Game is a mode driven by the TUI loop. Implementations never touch the
// terminal: the platform maps keys to actions, owns the tick clock and
// turns the Screen into output.
type Game interface {
	// ID is the registry key, also stored with each run ("maze", "maze_demo").
	ID() string
	Title() string

	// Reset builds a fresh maze and places the player at the start. It runs
	// before the first tick and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick worth of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Summarizer is implemented by games that can describe the current run for
// the history store.
type Summarizer interface {
	Summary() core.RunSummary
}

// Dumper is implemented by games that can produce a plain-text diagnostic
// report of the current run.
type Dumper interface {
	Dump(reason string) string
}

// Resizer is implemented by games that can adapt to a new screen size
// without a full Reset.
type Resizer interface {
	Resize(width, height int)
}

// Options carries everything a factory needs to build a game.
// Zero values select defaults.
type Options struct {
	Config     config.MazeConfig
	Difficulty string
	MapText    string // fixed maze layout; skips generation when set
	Logger     *log.Logger
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if len(o.Config.Difficulties) == 0 {
		o.Config = config.DefaultMazeConfig()
	}
	if o.Difficulty == "" {
		o.Difficulty = o.Config.DefaultDifficulty()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a game from defaulted options.
type Factory func(Options) Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = map[string]entry{}
)

// Register adds a mode. The title is taken from an instance built with
// default options. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	modes[id] = entry{factory: f, title: f(Options{}.WithDefaults()).Title()}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(modes))
	for id, e := range modes {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create builds the mode registered under id.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownMode, id)
	}
	return e.factory(opts.WithDefaults()), nil
}

// Exists reports whether a mode is registered under id. The CLI checks it
// before touching the terminal.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := modes[id]
	return ok
}
