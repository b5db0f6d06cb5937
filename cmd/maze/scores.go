package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagScoresRecent int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show best times",
	Long: `Display the fastest winning runs for a difficulty, or a summary of
every played difficulty when none is given. Demo runs are never ranked.

Examples:
  maze scores
  maze scores hard
  maze scores --recent 20
  maze scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresRecent, "recent", 0, "Show the N most recent runs of any mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the given difficulty")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	if store == nil {
		return fmt.Errorf("run history is disabled (empty --db)")
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a difficulty")
		}
		if err := store.ClearRuns(args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", args[0])
		return nil
	case flagScoresRecent > 0:
		return printRecent(store, flagScoresRecent)
	case len(args) == 1:
		return printBest(store, args[0])
	default:
		return printSummary(store)
	}
}

func printBest(store *storage.Store, difficulty string) error {
	runs, err := store.BestRuns(difficulty, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Times - %s\n", difficulty)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No winning runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'maze play --difficulty %s' to set the first time!\n", difficulty)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-9s  %-20s  %s\n", "Rank", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-9s  %-20s  %s\n", "----", "----", "----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-9s  %-20d  %s\n", i+1, tui.FormatDuration(r.Elapsed), r.Seed, dateStr)
	}

	stats, err := store.Stats(difficulty)
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Won: %d (%.0f%%)  Average win: %s\n",
			stats.Played, stats.Won, stats.WinRate()*100, tui.FormatDuration(stats.AvgWin))
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	names, err := store.Difficulties()
	if err != nil {
		return fmt.Errorf("retrieving difficulties: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Runs by difficulty")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-4s  %-9s  %s\n", "Difficulty", "Played", "Won", "Best", "Last played")
	fmt.Printf("  %-10s  %-6s  %-4s  %-9s  %s\n", "----------", "------", "---", "----", "-----------")
	for _, name := range names {
		st := all[name]
		if st == nil || st.Played == 0 {
			continue
		}
		best := "-"
		if st.Won > 0 {
			best = tui.FormatDuration(st.Best)
		}
		fmt.Printf("  %-10s  %-6d  %-4d  %-9s  %s\n",
			name, st.Played, st.Won, best, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecent(store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-9s  %-10s  %-9s  %-6s  %s\n", "Mode", "Difficulty", "Time", "Result", "Date")
	fmt.Printf("  %-9s  %-10s  %-9s  %-6s  %s\n", "----", "----------", "----", "------", "----")
	for _, r := range runs {
		result := "quit"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-9s  %-10s  %-9s  %-6s  %s\n",
			r.Mode, r.Difficulty, tui.FormatDuration(r.Elapsed), result, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
