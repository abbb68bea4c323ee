package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRuns  bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores or recent runs",
	Long: `Display the top high scores for a mode (breakout by default).

Examples:
  breakout scores
  breakout scores breakout_endless
  breakout scores --runs
  breakout scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs instead of high scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "breakout"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'breakout list' to see modes)", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores and runs for %s.\n", title)
		return nil
	case flagRuns:
		return printRuns(store, gameID, title)
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(gameID); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Blocks destroyed: %d\n", stats.Runs, stats.Wins, stats.BlocksDestroyed)
	}
	return nil
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-7s  %-8s  %-6s  %s\n", "Date", "Level", "Result", "Score", "Blocks", "Time")
	fmt.Printf("  %-16s  %-10s  %-7s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----", "------", "----")
	for _, r := range runs {
		seconds := r.Ticks / max(flagFPS, 1)
		fmt.Printf("  %-16s  %-10s  %-7s  %-8d  %-6d  %d:%02d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Outcome,
			r.Score, r.BlocksDestroyed, seconds/60, seconds%60)
	}
	return nil
}
