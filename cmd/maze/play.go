package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagDifficulty string
	flagMapPath    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a maze",
	Long: `Generate a maze and walk to the exit in first person.

Controls:
  W/Up       - Move forward
  S/Down     - Move back
  A/D        - Turn left/right
  Z/E        - Strafe left/right
  M          - Toggle minimap
  L/Ctrl+S   - Write a dump file
  P          - Pause
  R          - Restart with a new maze
  Q/Ctrl+C   - Quit

Difficulty options come from the config file (see 'maze difficulties').

Examples:
  maze play
  maze play --difficulty hard
  maze play --seed 42
  maze play --map ./saved.txt`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGame("maze")
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the auto-walker solve a maze",
	Long: `Generate a maze and let the demo walker follow the shortest path
to the exit. Demo runs are recorded but never ranked.

Controls:
  M          - Toggle minimap
  P          - Pause
  R          - Restart with a new maze
  Q/Ctrl+C   - Quit

Examples:
  maze demo
  maze demo --difficulty normal --fps 60`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGame("maze_demo")
	},
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, demoCmd} {
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty profile (default from config)")
		cmd.Flags().StringVar(&flagMapPath, "map", "", "Play a maze text file instead of generating one")
	}
}

func runGame(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("mode %q is not registered", gameID)
	}

	mazeCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		if _, err := mazeCfg.Profile(flagDifficulty); err != nil {
			return fmt.Errorf("%w\nRun 'maze difficulties' to see available profiles", err)
		}
	}

	var mapText string
	if flagMapPath != "" {
		data, err := os.ReadFile(flagMapPath)
		if err != nil {
			return fmt.Errorf("reading map: %w", err)
		}
		mapText = string(data)
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openStore()
	if err != nil {
		// The game still works without history
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := playOnce(gameID, flagDifficulty, mapText, mazeCfg, runtimeConfig(), store, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playOnce creates the game and runs it until the player leaves.
func playOnce(gameID, difficulty, mapText string, mazeCfg config.MazeConfig, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) (back bool, err error) {
	game, err := registry.Create(gameID, registry.Options{
		Config:     mazeCfg,
		Difficulty: difficulty,
		MapText:    mapText,
		Logger:     logger,
	})
	if err != nil {
		return false, fmt.Errorf("create game: %w", err)
	}

	return tui.Run(game, cfg, tui.Options{
		Store:   store,
		Logger:  logger,
		DumpDir: tui.DefaultDumpDir(),
	})
}
