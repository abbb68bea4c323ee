package breakout

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

// blockAt returns a 40x12 level with a single breakable block.
func blockAt(x, y int) *Level {
	l := NewLevel("single", "Single", 40, 12)
	l.IDs[y*l.Width+x] = 1
	return l
}

func newTestGame(mode GameMode, levels []*Level, mutate func(*config.BreakoutConfig)) *Game {
	cfg := config.DefaultBreakoutConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := NewWithConfig(mode, cfg, levels)
	g.Reset(testRuntime())
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func pointerInput(fraction float64, actions ...core.Action) core.InputFrame {
	in := input(actions...)
	in.SetPointer(fraction)
	return in
}

// runUntil steps with empty input until cond holds or limit ticks pass.
func runUntil(g *Game, limit int, cond func() bool) bool {
	for range limit {
		if cond() {
			return true
		}
		g.Step(input())
	}
	return cond()
}

func firstBall(t *testing.T, g *Game) *Ball {
	t.Helper()
	if g.balls.Len() == 0 {
		t.Fatal("no balls")
	}
	_, b := g.balls.At(0)
	return b
}

// launchAt moves the paddle to a field x and launches the ball from there.
func launchAt(g *Game, x float64) {
	g.Step(pointerInput(x / g.cfg.Field.Width))
	g.Step(input(core.ActionJump))
}

func TestServeAndLaunch(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)

	if g.Phase() != StateServe {
		t.Fatalf("state = %s, expected serve", g.Phase())
	}
	if pos := firstBall(t, g).Position(); pos != core.V2(400, 490) {
		t.Errorf("serve position = %+v, expected (400, 490)", pos)
	}

	g.Step(input())
	if g.Phase() != StateServe {
		t.Error("ball should wait for a launch")
	}

	g.Step(input(core.ActionJump))
	if g.Phase() != StatePlaying {
		t.Fatalf("state = %s, expected playing", g.Phase())
	}
	b := firstBall(t, g)
	if math.Abs(b.Angle()-LaunchAngle) > tolerance {
		t.Errorf("launch angle = %v, expected %v", b.Angle(), LaunchAngle)
	}

	g.Step(input())
	if y := firstBall(t, g).Position().Y; math.Abs(y-485) > tolerance {
		t.Errorf("y after one tick = %v, expected 485", y)
	}
}

func TestClickLaunchesInsteadOfMultiplying(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)

	g.Step(input(core.ActionMultiply))
	if g.Phase() != StatePlaying {
		t.Errorf("state = %s, expected playing", g.Phase())
	}
	if g.balls.Len() != 1 {
		t.Errorf("balls = %d, expected 1", g.balls.Len())
	}
}

func TestPaddleInput(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)

	g.Step(pointerInput(0.25))
	if x := g.paddle.Position.X; x != 200 {
		t.Errorf("paddle x = %v, expected 200", x)
	}
	if x := firstBall(t, g).Position().X; x != 200 {
		t.Errorf("serving ball x = %v, expected to ride the paddle", x)
	}

	// An unchanged pointer does not override the keys.
	g.Step(pointerInput(0.25, core.ActionRight))
	if x := g.paddle.Position.X; x != 212 {
		t.Errorf("paddle x = %v, expected 212", x)
	}

	g.Step(pointerInput(0))
	if x := g.paddle.Position.X; x != 50 {
		t.Errorf("paddle x = %v, expected clamp at half width", x)
	}
	for range 10 {
		g.Step(input(core.ActionLeft))
	}
	if x := g.paddle.Position.X; x != 50 {
		t.Errorf("paddle x = %v, expected to stay on the field", x)
	}
}

func TestMultiplyIsDeferred(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)
	g.Step(input(core.ActionJump))
	origID, _ := g.balls.At(0)

	g.Step(input(core.ActionMultiply))
	if g.balls.Len() != 3 {
		t.Fatalf("balls = %d, expected 3", g.balls.Len())
	}

	orig, ok := g.balls.Get(origID)
	if !ok {
		t.Fatal("original ball lost")
	}
	seen := map[BallID]bool{}
	for i := range g.balls.Len() {
		id, b := g.balls.At(i)
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		// Copies were not moved in the tick that spawned them.
		if b.Position() != orig.Position() {
			t.Errorf("ball %d at %+v, expected %+v", id, b.Position(), orig.Position())
		}
	}

	g.Step(input())
	if g.balls.Len() != 3 {
		t.Errorf("balls = %d after a plain tick, expected 3", g.balls.Len())
	}
}

func TestLosingLastBallEndsGame(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, func(c *config.BreakoutConfig) {
		c.Gameplay.Lives = 1
	})
	g.Step(input(core.ActionJump))
	g.Step(pointerInput(0)) // move the paddle out of the way

	if !runUntil(g, 1000, func() bool { return g.State().GameOver }) {
		t.Fatalf("game not over, state = %s", g.Phase())
	}
	st := g.State()
	if st.Won {
		t.Error("losing should not be a win")
	}
	if g.Phase() != StateGameOver || g.Lives() != 0 || g.balls.Len() != 0 {
		t.Errorf("state = %s, lives = %d, balls = %d", g.Phase(), g.Lives(), g.balls.Len())
	}

	// Restart brings a fresh game.
	g.Step(input(core.ActionRestart))
	if g.Phase() != StateServe || g.Lives() != 1 || g.State().Score != 0 {
		t.Errorf("after restart: state = %s, lives = %d", g.Phase(), g.Lives())
	}
}

func TestLosingBallCostsLife(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)
	g.Step(input(core.ActionJump))
	g.Step(pointerInput(0))

	if !runUntil(g, 1000, func() bool { return g.Phase() == StateServe }) {
		t.Fatalf("ball never lost, state = %s", g.Phase())
	}
	if g.Lives() != 2 {
		t.Errorf("lives = %d, expected 2", g.Lives())
	}
	if g.balls.Len() != 1 {
		t.Errorf("balls = %d, expected a new ball on the paddle", g.balls.Len())
	}

	// The serve delay holds the launch back.
	for range g.cfg.Gameplay.ServeDelay {
		g.Step(input(core.ActionJump))
		if g.Phase() != StateServe {
			t.Fatal("launched during the serve delay")
		}
	}
	g.Step(input(core.ActionJump))
	if g.Phase() != StatePlaying {
		t.Errorf("state = %s, expected playing after the delay", g.Phase())
	}
}

func TestClearingLastLevelWins(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(20, 5)}, nil) // centre (410, 110)
	launchAt(g, 410)

	if !runUntil(g, 500, func() bool { return g.State().GameOver }) {
		t.Fatalf("game not over, state = %s", g.Phase())
	}
	st := g.State()
	if !st.Won || g.Phase() != StateWin {
		t.Errorf("state = %s, expected win", g.Phase())
	}
	if st.Score != g.cfg.Gameplay.BlockPoints || g.BlocksDestroyed() != 1 {
		t.Errorf("score = %d, destroyed = %d", st.Score, g.BlocksDestroyed())
	}
}

func TestCampaignAdvances(t *testing.T) {
	first := blockAt(20, 5)
	second := blockAt(3, 3)
	second.ID = "second"
	g := newTestGame(ModeCampaign, []*Level{first, second}, nil)
	launchAt(g, 410)

	if !runUntil(g, 500, func() bool { return g.View().Level == 2 }) {
		t.Fatalf("level never advanced, state = %s", g.Phase())
	}
	if g.Phase() != StateServe || g.State().GameOver {
		t.Errorf("state = %s, expected serve on the next level", g.Phase())
	}
	if g.LevelID() != "second" || g.View().LevelCount != 2 {
		t.Errorf("level = %s of %d", g.LevelID(), g.View().LevelCount)
	}
	if g.grid.Remaining() != 1 || g.Lives() != 3 {
		t.Errorf("remaining = %d, lives = %d", g.grid.Remaining(), g.Lives())
	}
}

func TestEndlessCyclesAndNarrows(t *testing.T) {
	g := newTestGame(ModeEndless, []*Level{blockAt(20, 5)}, nil)
	launchAt(g, 410)

	if !runUntil(g, 500, func() bool { return g.wave == 1 }) {
		t.Fatalf("wave never cleared, state = %s", g.Phase())
	}
	if g.State().GameOver {
		t.Error("endless mode should not end on a clear")
	}
	if g.grid.Remaining() != 1 {
		t.Error("the level should be reloaded")
	}
	f := g.View()
	if f.Level != 2 || f.LevelCount != 0 {
		t.Errorf("view level = %d/%d, expected 2/0", f.Level, f.LevelCount)
	}
	if want := config.NewProgression(g.cfg).PaddleWidth(1); g.paddle.Width != want || want >= g.cfg.Paddle.Width {
		t.Errorf("paddle width = %v, expected %v", g.paddle.Width, want)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused from serve")
	}
	g.Step(input(core.ActionPause))
	if g.Phase() != StateServe {
		t.Errorf("state = %s, expected serve after unpause", g.Phase())
	}

	g.Step(input(core.ActionJump))
	g.Step(input(core.ActionPause))
	ticks := g.Ticks()
	pos := firstBall(t, g).Position()

	g.Step(input())
	if g.Ticks() != ticks || firstBall(t, g).Position() != pos {
		t.Error("paused game advanced")
	}

	g.Step(input(core.ActionPause))
	if g.Phase() != StatePlaying || g.Ticks() != ticks+1 {
		t.Errorf("state = %s, ticks = %d, expected playing and one more tick", g.Phase(), g.Ticks())
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)
	g.Step(input(core.ActionJump))
	g.Step(input(core.ActionRestart))
	if g.Phase() != StatePlaying {
		t.Errorf("state = %s, restart should only work after the game ends", g.Phase())
	}
}

// sweepInputs drives the paddle with a moving pointer, launches at tick 5
// and multiplies twice.
func sweepInputs(n int) []core.InputFrame {
	inputs := make([]core.InputFrame, n)
	for i := range inputs {
		inputs[i] = pointerInput(0.5 + 0.45*math.Sin(float64(i)/37))
		switch i {
		case 5:
			inputs[i].Set(core.ActionJump)
		case 120, 400:
			inputs[i].Set(core.ActionMultiply)
		}
	}
	return inputs
}

func TestGameDeterminism(t *testing.T) {
	inputs := sweepInputs(1500)

	run := func() Snapshot {
		g := newTestGame(ModeCampaign, BuiltinLevels(), nil)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", snap1.Tick, snap2.Tick)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	inputs := sweepInputs(600)

	g1 := newTestGame(ModeCampaign, BuiltinLevels(), nil)
	for _, in := range inputs[:300] {
		g1.Step(in)
	}
	snap := g1.Snapshot()

	g2 := newTestGame(ModeCampaign, BuiltinLevels(), nil)
	g2.ApplySnapshot(snap)
	restored := g2.Snapshot()
	if restored.Hash() != snap.Hash() {
		t.Fatalf("restored hash %d, expected %d", restored.Hash(), snap.Hash())
	}

	for _, in := range inputs[300:] {
		g1.Step(in)
		g2.Step(in)
	}
	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("games diverged after restore: %d vs %d", s1.Hash(), s2.Hash())
	}
}

func TestSpeedInvarianceInPlay(t *testing.T) {
	g := newTestGame(ModeCampaign, BuiltinLevels(), nil)
	g.Step(input(core.ActionJump))

	for tick := range 4000 {
		in := input(core.ActionJump)
		if g.balls.Len() > 0 {
			_, b := g.balls.At(0)
			in.SetPointer(b.Position().X / g.cfg.Field.Width)
		}
		if tick == 200 || tick == 900 {
			in.Set(core.ActionMultiply)
		}

		if g.Step(in).State.GameOver {
			break
		}
		for i := range g.balls.Len() {
			_, b := g.balls.At(i)
			if g.Phase() == StatePlaying {
				checkBallInvariants(t, b, g.cfg.Ball.Speed)
			}
		}
		if t.Failed() {
			t.Fatalf("invariant broken at tick %d", tick)
		}
	}
	if g.BlocksDestroyed() == 0 {
		t.Error("expected some blocks to be destroyed")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(20, 5)}, nil)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Lives: 3", "Level: 1/1"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	// Block centre (410, 110) lands on columns 40-41 of row 5.
	for _, x := range []int{40, 41} {
		cell := screen.GetCell(x, 5)
		if cell.Rune != BlockGlyph || cell.Color != core.ColorBlue {
			t.Errorf("block cell (%d,5) = %q/%v", x, cell.Rune, cell.Color)
		}
	}
	if screen.Get(39, 5) == BlockGlyph || screen.Get(42, 5) == BlockGlyph {
		t.Error("block drawn wider than its cells")
	}

	// Paddle spans x 350-450 on row 20.
	for x := 35; x <= 44; x++ {
		if screen.Get(x, 20) != PaddleChar {
			t.Errorf("paddle missing at (%d,20)", x)
		}
	}
	if screen.Get(40, 19) != BallChar {
		t.Errorf("ball missing at (40,19), got %q", screen.Get(40, 19))
	}
	if !strings.Contains(screen.Row(23), "launch") {
		t.Errorf("serve hint missing: %q", screen.Row(23))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(ModeCampaign, config.DefaultBreakoutConfig(), []*Level{blockAt(0, 0)})
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Step(input(core.ActionJump))
	if g.Phase() != StateServe {
		t.Error("game should not run while the screen is too small")
	}
}

func TestViewIsACopy(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(20, 5)}, nil)
	f := g.View()
	if len(f.Blocks) != 1 || len(f.Balls) != 1 {
		t.Fatalf("view has %d blocks and %d balls", len(f.Blocks), len(f.Balls))
	}

	f.Blocks[0].ID = 9
	f.Balls[0].Position = core.V2(0, 0)

	if b, _ := g.grid.At(f.Blocks[0].Index); b.ID != 1 {
		t.Error("editing the view changed the grid")
	}
	if firstBall(t, g).Position() == core.V2(0, 0) {
		t.Error("editing the view moved the ball")
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"breakout", "breakout_endless"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
	g, err := registry.Create("breakout_endless")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Breakout (Endless)" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestResizeKeepsState(t *testing.T) {
	g := newTestGame(ModeCampaign, []*Level{blockAt(0, 0)}, nil)
	g.Step(input(core.ActionJump))
	g.Step(input())
	before := g.Snapshot().Hash()

	g.Resize(20, 8)
	if res := g.Step(input()); res.State.GameOver {
		t.Fatal("too small screen should not end the game")
	}
	if g.Snapshot().Hash() != before {
		t.Error("simulation advanced on a too small screen")
	}

	g.Resize(80, 24)
	g.Step(input())
	if g.Ticks() != 3 {
		t.Errorf("ticks = %d after growing the screen back, expected 3", g.Ticks())
	}
}
