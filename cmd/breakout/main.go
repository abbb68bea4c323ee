// breakout is a brick breaker for the terminal, with an optional desktop
// window.
//
// Usage:
//
//	breakout play            - Play the campaign (or --endless)
//	breakout menu            - Pick a mode or level interactively
//	breakout list            - List modes and built-in levels
//	breakout scores [mode]   - Show high scores or recent runs
//	breakout level ...       - Export, inspect and create level files
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Seed recorded with each run
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Registers the breakout modes
	_ "github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout is a brick breaker with ball multiplication, a ten level
campaign, an endless mode and a packed binary level format.

Available commands:
  play     - Play the campaign, endless mode or a level file
  menu     - Interactive mode and level picker
  list     - Show modes and built-in levels
  scores   - View high scores and recent runs
  level    - Export, show and create level files

Examples:
  breakout play
  breakout play --endless --difficulty hard
  breakout play --level pyramid --window
  breakout level export castle castle.lvl
  breakout play --file castle.lvl`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed recorded with the run (0 = based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
