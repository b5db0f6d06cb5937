package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and difficulty picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right or h/l to change the
difficulty, Enter to start. After a run ends you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Start
  Tab             - Scoreboard
  Q               - Quit

Examples:
  maze menu
  maze menu --fps 60
  maze menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	mazeCfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := mazeCfg.DefaultDifficulty()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, mazeCfg, difficulty)
		if err != nil {
			return err
		}

		// Keep size and difficulty changes for the next round
		cfg = menuResult.Config
		if menuResult.Difficulty != "" {
			difficulty = menuResult.Difficulty
		}

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, mazeCfg, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.GameID == "" {
			return nil
		}

		back, err := playOnce(menuResult.GameID, difficulty, "", mazeCfg, cfg, store, logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
