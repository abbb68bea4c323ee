package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// fakeGame ends after a fixed number of ticks.
type fakeGame struct {
	steps    int
	endAfter int
	won      bool
	resized  [2]int
	resets   int
	last     core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	if g.steps < g.endAfter {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState {
	over := g.steps >= g.endAfter
	return core.GameState{Score: g.steps * 10, GameOver: over, Won: over && g.won}
}
func (g *fakeGame) LevelID() string      { return "classic" }
func (g *fakeGame) BlocksDestroyed() int { return g.steps }
func (g *fakeGame) Ticks() int           { return g.steps }
func (g *fakeGame) Resize(w, h int)      { g.resized = [2]int{w, h} }

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModelRecordsOnce(t *testing.T) {
	store := testStore(t)
	g := &fakeGame{endAfter: 3, won: true}
	m := NewModel(g, store, core.DefaultConfig())

	for range 10 {
		m = tick(t, m)
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 30 {
		t.Errorf("scores = %+v, expected a single 30", scores)
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, expected 1", len(runs))
	}
	r := runs[0]
	if r.Outcome != storage.OutcomeWin || r.LevelID != "classic" || r.BlocksDestroyed != 3 || r.Ticks != 3 {
		t.Errorf("run = %+v", r)
	}
	if r.Seed == 0 {
		t.Error("seed should be filled in")
	}
}

func TestModelRestartRecordsAgain(t *testing.T) {
	store := testStore(t)
	g := &fakeGame{endAfter: 1}
	m := NewModel(g, store, core.DefaultConfig())

	m = tick(t, m)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	m = tick(t, m) // restart
	m = tick(t, m) // ends again

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 2 {
		t.Errorf("runs = %d, expected one per game", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeLoss {
		t.Errorf("outcome = %s, expected loss", runs[0].Outcome)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestModelQuitRecordsStartedRun(t *testing.T) {
	store := testStore(t)
	g := &fakeGame{endAfter: 100}
	m := NewModel(g, store, core.DefaultConfig())
	m = tick(t, m)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	m = next.(Model)
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Errorf("runs = %+v, expected one quit", runs)
	}
	if scores, _ := store.TopScores("fake", 10); len(scores) != 0 {
		t.Error("quitting should not store a high score")
	}
}

func TestModelQuitBeforeStartRecordsNothing(t *testing.T) {
	store := testStore(t)
	m := NewModel(&fakeGame{endAfter: 100}, store, core.DefaultConfig())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if runs, _ := store.RecentRuns("", 10); len(runs) != 0 {
		t.Errorf("runs = %d, expected none", len(runs))
	}
}

func TestModelInputReachesGame(t *testing.T) {
	g := &fakeGame{endAfter: 100}
	m := NewModel(g, nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 39, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	m = tick(t, m)

	if !g.last.Has(core.ActionLeft) || !g.last.Has(core.ActionMultiply) {
		t.Errorf("actions = %v, expected left and multiply", g.last.Actions)
	}
	if !g.last.HasPointer || g.last.PointerX != 0.49375 {
		t.Errorf("pointer = %v, expected 0.49375", g.last.PointerX)
	}

	// Actions are per tick; the pointer position persists.
	m = tick(t, m)
	if g.last.Has(core.ActionLeft) || !g.last.HasPointer {
		t.Errorf("second tick input = %+v", g.last)
	}
}

func TestModelResize(t *testing.T) {
	g := &fakeGame{endAfter: 100}
	m := NewModel(g, nil, core.DefaultConfig())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resized != [2]int{100, 29} {
		t.Errorf("resized to %v, expected 100x29 above the help line", g.resized)
	}
	if g.resets != 0 {
		t.Error("a resizable game should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.HasPrefix(m.View(), "fake") {
		t.Error("view should start with the game frame")
	}
}

func TestGameKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}, core.ActionMultiply, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := keys.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %s, %v; expected %s, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestMouseMotionOnlyMovesPointer(t *testing.T) {
	frame := core.NewInputFrame()
	MapMouseToFrame(tea.MouseMsg{X: 0, Action: tea.MouseActionMotion}, 80, &frame)

	if frame.Has(core.ActionMultiply) {
		t.Error("motion should not multiply")
	}
	if frame.PointerX != 0.00625 {
		t.Errorf("pointer = %v, expected the centre of the first column", frame.PointerX)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '█', core.ColorRed)
	s.SetColored(3, 0, '█', core.ColorRed)
	s.SetColored(0, 1, '▓', core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "██") {
		t.Errorf("first line %q lost text", lines[0])
	}
	if !strings.Contains(lines[1], "▓") {
		t.Errorf("second line %q lost the block", lines[1])
	}
}
