// maze is a first-person ASCII maze game for the terminal.
//
// Usage:
//
//	maze play                 - Play a generated maze
//	maze demo                 - Watch the auto-walker solve a maze
//	maze menu                 - Pick mode and difficulty interactively
//	maze generate             - Print a generated maze as text
//	maze difficulties         - List difficulty profiles and modes
//	maze scores [difficulty]  - Show best times
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible mazes
//	--db <path>         - Set database path (default: ~/.maze/runs.db, "" disables history)
//	--config <path>     - Use a custom maze.yaml
//	--log-level <lvl>   - debug, info, warn, error (default: warn)
//	--log-file <path>   - Log destination while the TUI is running
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-maze/internal/games/raymaze"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - a first-person ASCII maze in your terminal",
	Long: `Maze generates a solvable maze and lets you walk through it in a
raycast first-person view, or watch the demo walker find the exit.

Available commands:
  play          - Play a maze directly
  demo          - Watch the auto-walker
  menu          - Interactive mode and difficulty picker
  generate      - Print a generated maze as text
  difficulties  - List difficulty profiles
  scores        - View best times

Examples:
  maze play
  maze play --difficulty hard --seed 42
  maze demo --difficulty normal
  maze generate --difficulty easy --out easy.txt
  maze play --map easy.txt
  maze scores hard`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/runs.db", "Path to run history database (empty disables history)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.maze/maze.log", "Log file used while the TUI owns the terminal")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. TUI commands log to --log-file since
// the terminal is taken; the rest log to stderr. The returned closer is never nil.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-level: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if toFile {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
			w = io.Discard
		} else {
			w = f
			closer = f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
		Level:           level,
	})
	return logger, closer, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file set")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// openStore opens the run history. An empty --db disables it and returns a
// nil store, which every caller treats as "do not record".
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	return storage.Open(flagDBPath)
}

// loadConfig reads the maze config honoring --config.
func loadConfig() (config.MazeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
