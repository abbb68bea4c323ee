// Package window runs breakout in a desktop window with Ebiten. The field is
// drawn at its native size and the mouse drives the paddle, as in the
// classic mouse-controlled game.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options configures the window frontend.
type Options struct {
	Store   *storage.Store // may be nil
	Logger  *log.Logger
	Runtime core.RuntimeConfig
	Scale   float64 // window size relative to the field, 1 when zero
}

// Frontend implements ebiten.Game around a breakout simulation.
type Frontend struct {
	game     *breakout.Game
	opts     Options
	state    core.GameState
	recorded bool
	lastRun  *storage.RunRecord
	saveErr  error
}

// New wraps game. The game is reset when Run starts.
func New(game *breakout.Game, opts Options) *Frontend {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	// The terminal renderer is not used here; keep the screen check happy.
	if opts.Runtime.ScreenW == 0 || opts.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	return &Frontend{game: game, opts: opts}
}

// Update advances the simulation by one tick.
func (f *Frontend) Update() error {
	in := f.sampleInput()

	if in.Has(core.ActionQuit) {
		f.record(storage.OutcomeQuit)
		return ebiten.Termination
	}

	wasOver := f.state.GameOver
	f.state = f.game.Step(in).State

	// The game restarts itself on R; the next game gets its own record.
	if wasOver && !f.state.GameOver {
		f.recorded = false
	}
	if f.state.GameOver {
		outcome := storage.OutcomeLoss
		if f.state.Won {
			outcome = storage.OutcomeWin
		}
		f.record(outcome)
	}
	return nil
}

// Layout keeps the logical screen at the field size; Ebiten scales it to
// the window.
func (f *Frontend) Layout(_, _ int) (int, int) {
	cfg := f.game.Config()
	return int(cfg.Field.Width), int(cfg.Field.Height)
}

// record stores the current run once per game.
func (f *Frontend) record(outcome string) {
	if f.recorded {
		return
	}
	f.recorded = true

	if f.game.Ticks() == 0 && outcome == storage.OutcomeQuit {
		return
	}
	run := storage.RunRecord{
		GameID:          f.game.ID(),
		LevelID:         f.game.LevelID(),
		Outcome:         outcome,
		Score:           f.state.Score,
		BlocksDestroyed: f.game.BlocksDestroyed(),
		Ticks:           f.game.Ticks(),
		Seed:            f.opts.Runtime.Seed,
	}
	f.lastRun = &run

	if f.opts.Store == nil {
		return
	}
	if err := f.opts.Store.RecordRun(run); err != nil {
		f.saveErr = errors.Join(f.saveErr, err)
	}
}

// Run opens the window and plays until it is closed or Q is pressed.
func Run(game *breakout.Game, opts Options) error {
	f := New(game, opts)
	cfg := game.Config()

	ebiten.SetWindowSize(int(cfg.Field.Width*f.opts.Scale), int(cfg.Field.Height*f.opts.Scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(f.opts.Runtime.TickRate)

	game.Reset(f.opts.Runtime)
	f.state = game.State()
	f.opts.Logger.Debug("opening window", "game", game.ID(),
		"size", fmt.Sprintf("%.0fx%.0f", cfg.Field.Width, cfg.Field.Height), "tps", f.opts.Runtime.TickRate)

	if err := ebiten.RunGame(f); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}

	// Closing the window skips the quit key path.
	f.record(storage.OutcomeQuit)

	if f.lastRun != nil {
		f.opts.Logger.Info("run finished",
			"game", f.lastRun.GameID,
			"level", f.lastRun.LevelID,
			"outcome", f.lastRun.Outcome,
			"score", f.lastRun.Score,
			"blocks", f.lastRun.BlocksDestroyed,
			"ticks", f.lastRun.Ticks)
	}
	if f.saveErr != nil {
		f.opts.Logger.Warn("could not save results", "error", f.saveErr)
	}
	return nil
}
