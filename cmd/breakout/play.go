package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/platform/window"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLevelFile  string
	flagEndless    bool
	flagWindow     bool
	flagScale      float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start playing breakout in the terminal, or in a window with --window.

Controls:
  A/D, Left/Right  - Move the paddle (the mouse works too)
  Space            - Launch the ball
  M, left click    - Multiply every ball in play
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Five lives, wider paddle, slower ball
  normal - Values from the config file
  hard   - One life, narrow paddle, faster ball

Examples:
  breakout play
  breakout play --level 4
  breakout play --endless --difficulty easy
  breakout play --file my.lvl --window
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Built-in level to start from (number or id)")
	playCmd.Flags().StringVar(&flagLevelFile, "file", "", "Play a single level from a binary level file")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Cycle the levels forever")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a desktop window instead of using the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale (with --window)")
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// applyGameFlags validates the config, difficulty and level flags and hands
// them to the breakout package. Returns the mode to start.
func applyGameFlags() (string, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return "", err
	}
	if _, ok := config.ParseDifficultyPreset(flagDifficulty); !ok {
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
	}
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)

	breakout.SetStartLevel(0)
	breakout.SetCustomLevel(nil)

	switch {
	case flagLevelFile != "" && flagLevel != "":
		return "", fmt.Errorf("--file and --level cannot be combined")
	case flagLevelFile != "":
		l, err := breakout.ReadLevelFile(flagLevelFile)
		if err != nil {
			return "", err
		}
		if err := l.Fits(cfg); err != nil {
			return "", fmt.Errorf("%s: %w", flagLevelFile, err)
		}
		breakout.SetCustomLevel(l)
	case flagLevel != "":
		index, err := breakout.ResolveLevel(flagLevel)
		if err != nil {
			return "", err
		}
		breakout.SetStartLevel(index)
	}

	if flagEndless {
		return "breakout_endless", nil
	}
	return "breakout", nil
}

// openStore opens the score database. Failures are logged and play
// continues without storage.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	gameID, err := applyGameFlags()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	if flagWindow {
		bg, ok := game.(*breakout.Game)
		if !ok {
			return fmt.Errorf("%s cannot run in a window", gameID)
		}
		cfg.ScreenW, cfg.ScreenH = 0, 0
		return window.Run(bg, window.Options{
			Store:   store,
			Logger:  logger,
			Runtime: cfg,
			Scale:   flagScale,
		})
	}

	return tui.Run(game, store, cfg, logger)
}
