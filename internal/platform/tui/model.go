package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// runReporter is implemented by games that can describe a finished run.
type runReporter interface {
	LevelID() string
	BlocksDestroyed() int
	Ticks() int
}

// resizer is implemented by games that survive a terminal resize.
type resizer interface {
	Resize(width, height int)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	recorded   bool // score and run stored for the current game
	saveErrs   []error
	lastRun    *storage.RunRecord
}

// NewModel creates a model for the given game. A zero seed is replaced
// with a time based one.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// playHeight leaves the bottom row for the help line.
func playHeight(screenH int) int {
	return max(screenH-1, 0)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = playHeight(cfg.ScreenH)
	return cfg
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouseToFrame(msg, m.config.ScreenW, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.record(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize resizes the screen buffer. Games that cannot resize in place
// are restarted, unless they already ended.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, playHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		outcome := storage.OutcomeLoss
		if m.gameState.Won {
			outcome = storage.OutcomeWin
		}
		m.record(outcome)
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// record stores the score and a run entry once per game. Runs that never
// started are not recorded.
func (m *Model) record(outcome string) {
	if m.recorded {
		return
	}
	m.recorded = true

	run := storage.RunRecord{
		GameID:  m.game.ID(),
		Outcome: outcome,
		Score:   m.gameState.Score,
		Seed:    m.config.Seed,
	}
	if rr, ok := m.game.(runReporter); ok {
		run.LevelID = rr.LevelID()
		run.BlocksDestroyed = rr.BlocksDestroyed()
		run.Ticks = rr.Ticks()
	}
	if run.Ticks == 0 && outcome == storage.OutcomeQuit {
		return
	}
	m.lastRun = &run

	if m.store == nil {
		return
	}
	if err := m.store.RecordRun(run); err != nil {
		m.saveErrs = append(m.saveErrs, err)
	}
}

// saveScreenshot writes the current frame as plain text to
// ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.saveErrs = append(m.saveErrs, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.saveErrs = append(m.saveErrs, err)
	}
}

// View renders the game followed by the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run plays the game until the user quits. Storage problems do not stop
// play; they are logged once the terminal is restored.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	model := NewModel(game, store, cfg)
	logger.Debug("starting game", "game", game.ID(), "seed", model.config.Seed,
		"screen", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return nil
	}
	if m.lastRun != nil {
		logger.Info("run finished",
			"game", m.lastRun.GameID,
			"level", m.lastRun.LevelID,
			"outcome", m.lastRun.Outcome,
			"score", m.lastRun.Score,
			"blocks", m.lastRun.BlocksDestroyed,
			"ticks", m.lastRun.Ticks)
	}
	if len(m.saveErrs) > 0 {
		logger.Warn("could not save results", "error", errors.Join(m.saveErrs...))
	}
	return nil
}
