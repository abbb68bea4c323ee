package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar       = '='
	BallChar         = '●'
	BlockGlyph       = '█'
	UnbreakableGlyph = '▓'
)

// Smallest terminal the game renders into.
const (
	minScreenW = 40
	minScreenH = 12
)

// GameState constants
const (
	StateServe    = "serve"    // Ball on paddle, waiting for launch
	StatePlaying  = "playing"  // Ball in play
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // All levels completed (campaign only)
	StatePaused   = "paused"   // Game paused
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through levels, win at end
	ModeEndless                  // Play forever, score until game over
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel is the playlist index the next game starts from.
var startLevel int

// customLevel replaces the built-in playlist when set.
var customLevel *Level

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParseDifficultyPreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the 0-based built-in level to start from.
func SetStartLevel(index int) {
	startLevel = max(index, 0)
}

// SetCustomLevel plays a single level instead of the built-in campaign.
// Passing nil restores the built-in levels.
func SetCustomLevel(l *Level) {
	customLevel = l
}

// Game implements the Breakout game logic.
type Game struct {
	// Game mode
	mode GameMode

	// Game objects
	paddle *Paddle
	balls  *BallSet
	grid   *Grid
	level  *Level

	// Levels
	playlist   []*Level
	levelIndex int
	wave       int // Levels cleared this run

	// Game state
	state           string
	pausedFrom      string
	score           int
	lives           int
	tickCount       int
	serveDelay      int // Countdown before allowing serve after a miss
	blocksDestroyed int
	lastPointer     float64
	lost            []BallID

	// Configuration
	runtime     core.RuntimeConfig
	cfg         config.BreakoutConfig
	fixedCfg    bool
	phys        Physics
	offsets     []float64
	progression *config.Progression

	screenTooSmall bool
}

// New creates a new Breakout game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Breakout game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that uses cfg as is instead of loading it,
// playing the given levels (nil means the built-in ones).
func NewWithConfig(mode GameMode, cfg config.BreakoutConfig, levels []*Level) *Game {
	return &Game{
		mode:     mode,
		cfg:      cfg,
		fixedCfg: true,
		playlist: levels,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "breakout_endless"
	}
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Breakout (Endless)"
	}
	return "Breakout"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		// Load game config
		cfg, err := config.LoadBreakout(configPath)
		if err != nil {
			cfg = config.DefaultBreakoutConfig()
		}

		// Apply difficulty preset if set
		if difficultyPreset != "" {
			config.ApplyBreakoutPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
		g.playlist = nil
	}

	g.phys = Physics{
		FieldWidth:  g.cfg.Field.Width,
		FieldHeight: g.cfg.Field.Height,
		Radius:      g.cfg.Ball.Radius,
		Speed:       g.cfg.Ball.Speed,
		Geometry: Geometry{
			CellSize: g.cfg.Blocks.CellSize,
			Spacing:  g.cfg.Blocks.Spacing,
		},
	}
	g.offsets = MultiplyOffsets(g.cfg.Gameplay.MultiplyPattern)
	g.progression = config.NewProgression(g.cfg)

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	// Build the playlist
	g.levelIndex = 0
	if g.playlist == nil {
		switch {
		case customLevel != nil:
			g.playlist = []*Level{customLevel}
		case g.mode == ModeEndless:
			g.playlist = BuiltinLevels()
			g.levelIndex = startLevel % len(g.playlist)
		default:
			levels := BuiltinLevels()
			g.playlist = levels[min(startLevel, len(levels)-1):]
		}
	}

	// Initialize game state
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.tickCount = 0
	g.serveDelay = 0
	g.wave = 0
	g.blocksDestroyed = 0
	g.pausedFrom = ""
	g.lastPointer = math.NaN()

	g.paddle = NewPaddle(g.cfg.Field.Width/2, g.cfg.Paddle.Y, g.cfg.Paddle.Width, g.cfg.Paddle.Height)
	if g.balls == nil {
		g.balls = NewBallSet()
	}

	g.loadLevel()
	g.placeBallOnPaddle()
	g.state = StateServe
}

// Resize updates the screen size without touching the simulation. The field
// is fixed, so only the projection and the too-small check change.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < minScreenW || height < minScreenH
}

// loadLevel builds the grid for the current playlist entry.
func (g *Game) loadLevel() {
	if len(g.playlist) == 0 {
		g.level = NewLevel("empty", "Empty", 0, 0)
	} else {
		g.level = g.playlist[g.levelIndex%len(g.playlist)]
	}
	g.grid = g.level.Grid(g.phys.Geometry)
}

// servePosition is where a ball waits on the paddle.
func (g *Game) servePosition() core.Vec2 {
	return core.V2(g.paddle.Position.X, g.paddle.Position.Y-2*g.phys.Radius)
}

// placeBallOnPaddle replaces all balls with a single one resting on the paddle.
func (g *Game) placeBallOnPaddle() {
	g.balls.Clear()
	g.balls.Add(NewBall(g.servePosition(), LaunchAngle, g.phys))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.isTerminal() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = g.pausedFrom
		case StatePlaying, StateServe:
			g.pausedFrom = g.state
			g.state = StatePaused
		}
	}

	// Don't update if paused or game over
	if g.state == StatePaused || g.isTerminal() {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Handle paddle movement
	g.updatePaddle(in)

	if g.state == StateServe {
		g.updateServe(in)
		return core.StepResult{State: g.State()}
	}

	g.updateBalls(in.Has(core.ActionMultiply))

	return core.StepResult{State: g.State()}
}

// updatePaddle moves the paddle from pointer and keyboard input. A pointer
// only counts when it moved, so keys keep working with a resting mouse.
func (g *Game) updatePaddle(in core.InputFrame) {
	x := g.paddle.Position.X

	if in.HasPointer && in.PointerX != g.lastPointer {
		g.lastPointer = in.PointerX
		x = in.PointerX * g.cfg.Field.Width
	}

	// A/Left = move left, D/Right = move right
	if in.Has(core.ActionLeft) {
		x -= g.cfg.Paddle.KeyboardSpeed
	}
	if in.Has(core.ActionRight) {
		x += g.cfg.Paddle.KeyboardSpeed
	}

	// Keep the paddle on the field
	half := g.paddle.HalfWidth()
	g.paddle.MoveTo(core.ClampF(x, half, g.cfg.Field.Width-half))
}

// updateServe keeps the ball on the paddle until it is launched.
func (g *Game) updateServe(in core.InputFrame) {
	for i := range g.balls.Len() {
		_, b := g.balls.At(i)
		b.Place(g.servePosition())
	}

	if g.serveDelay > 0 {
		g.serveDelay--
		return
	}

	// Space or a click launches
	if in.Has(core.ActionJump) || in.Has(core.ActionMultiply) {
		for i := range g.balls.Len() {
			_, b := g.balls.At(i)
			b.SetAngle(LaunchAngle)
		}
		g.state = StatePlaying
	}
}

// updateBalls runs one physics pass over every live ball. Lost balls are
// collected during the pass and removed after it; multiplied balls are
// added after that, so neither changes the set being iterated.
func (g *Game) updateBalls(multiply bool) {
	g.lost = g.lost[:0]

	for i := range g.balls.Len() {
		id, b := g.balls.At(i)

		b.Move()
		b.PlayerCollision(g.paddle)
		if hit := b.GridCollision(g.grid); hit.Destroyed {
			g.score += g.cfg.Gameplay.BlockPoints
			g.blocksDestroyed++
		}

		if b.OutOfBounds() {
			g.lost = append(g.lost, id)
		}
	}

	for _, id := range g.lost {
		g.balls.Remove(id)
	}

	if multiply {
		Multiply(g.balls, g.offsets)
	}

	// A cleared level wins even if the last ball fell on the same tick
	if g.grid.Finished() {
		g.handleLevelClear()
		return
	}
	if g.balls.Len() == 0 {
		g.handleMiss()
	}
}

// handleMiss handles when all balls are lost.
func (g *Game) handleMiss() {
	g.lives--

	if g.lives <= 0 {
		g.lives = 0
		g.state = StateGameOver
		return
	}

	g.placeBallOnPaddle()
	g.state = StateServe
	g.serveDelay = g.cfg.Gameplay.ServeDelay
}

// handleLevelClear handles when all breakable blocks are destroyed.
func (g *Game) handleLevelClear() {
	g.levelIndex++
	g.wave++

	if g.mode == ModeCampaign {
		// Campaign mode: check if all levels completed
		if g.levelIndex >= len(g.playlist) {
			g.levelIndex = max(len(g.playlist)-1, 0)
			g.state = StateWin
			return
		}
	} else {
		// Endless mode: cycle through levels, narrowing the paddle
		g.levelIndex %= max(len(g.playlist), 1)
		g.paddle.Width = g.progression.PaddleWidth(g.wave)
	}

	g.loadLevel()
	g.placeBallOnPaddle()
	g.state = StateServe
	g.serveDelay = g.cfg.Gameplay.ServeDelay
}

func (g *Game) isTerminal() bool {
	return g.state == StateGameOver || g.state == StateWin
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.isTerminal(),
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Phase returns the state name (serve, playing, paused, gameover, win).
func (g *Game) Phase() string { return g.state }

// Mode returns the game mode.
func (g *Game) Mode() GameMode { return g.mode }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Ticks returns the number of simulated ticks.
func (g *Game) Ticks() int { return g.tickCount }

// BlocksDestroyed returns the number of blocks destroyed this run.
func (g *Game) BlocksDestroyed() int { return g.blocksDestroyed }

// LevelID returns the ID of the level being played.
func (g *Game) LevelID() string { return g.level.ID }

// Config returns the configuration in use.
func (g *Game) Config() config.BreakoutConfig { return g.cfg }

// BallView is the read-only state of one ball.
type BallView struct {
	ID       BallID
	Position core.Vec2
	Radius   float64
}

// Frame is a read-only snapshot of everything a renderer needs. It shares
// nothing with the simulation.
type Frame struct {
	Width, Height float64 // Field size
	BlockHalfSize float64
	Blocks        []Block
	Balls         []BallView
	Paddle        core.Box

	State      string
	Score      int
	Lives      int
	Level      int // 1-based number shown to the player
	LevelCount int // 0 in endless mode
	LevelName  string
	ServeDelay int
}

// View returns the current frame.
func (g *Game) View() Frame {
	f := Frame{
		Width:         g.cfg.Field.Width,
		Height:        g.cfg.Field.Height,
		BlockHalfSize: g.phys.Geometry.HalfSize(),
		Blocks:        g.grid.Blocks(),
		Balls:         make([]BallView, 0, g.balls.Len()),
		Paddle:        g.paddle.Bounds(),
		State:         g.state,
		Score:         g.score,
		Lives:         g.lives,
		LevelName:     g.level.Name,
		ServeDelay:    g.serveDelay,
	}

	for i := range g.balls.Len() {
		id, b := g.balls.At(i)
		f.Balls = append(f.Balls, BallView{ID: id, Position: b.Position(), Radius: b.Radius()})
	}

	if g.mode == ModeEndless {
		f.Level = g.wave + 1
	} else {
		f.Level = g.levelIndex + 1
		f.LevelCount = len(g.playlist)
	}
	return f
}

// HUD returns the status line texts: score, lives and level.
func (f Frame) HUD() (score, lives, level string) {
	score = fmt.Sprintf("Score: %d", f.Score)
	lives = fmt.Sprintf("Lives: %d", f.Lives)
	if f.LevelCount == 0 {
		level = fmt.Sprintf("Level: %d", f.Level)
	} else {
		level = fmt.Sprintf("Level: %d/%d", f.Level, f.LevelCount)
	}
	return score, lives, level
}

// Overlay returns the centred message for the current state, if any.
// Serve hints have an empty title.
func (f Frame) Overlay() (title, subtitle string) {
	switch f.State {
	case StateServe:
		if f.ServeDelay > 0 {
			return "", "Get ready..."
		}
		return "", "Press SPACE or click to launch"
	case StatePaused:
		return "PAUSED", "Press P to resume"
	case StateGameOver:
		return "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", f.Score)
	case StateWin:
		return "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Press R to restart", f.Score)
	}
	return "", ""
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	f := g.View()
	p := newProjection(f, dst.Width(), dst.Height())

	renderHUD(dst, f)
	renderBlocks(dst, f, p)
	renderPaddle(dst, f, p)
	renderBalls(dst, f, p)
	renderOverlay(dst, f)
}

// projection maps field coordinates onto the screen below the HUD row.
type projection struct {
	w, h   int // Play area in cells
	sx, sy float64
}

func newProjection(f Frame, screenW, screenH int) projection {
	h := screenH - 1
	return projection{
		w:  screenW,
		h:  h,
		sx: float64(screenW) / f.Width,
		sy: float64(h) / f.Height,
	}
}

func (p projection) col(x float64) int {
	return core.Clamp(int(math.Floor(x*p.sx)), 0, p.w-1)
}

func (p projection) row(y float64) int {
	return 1 + core.Clamp(int(math.Floor(y*p.sy)), 0, p.h-1)
}

// span returns the columns covered by [x0, x1).
func (p projection) span(x0, x1 float64) (int, int) {
	c0 := p.col(x0)
	c1 := core.Clamp(int(math.Ceil(x1*p.sx))-1, c0, p.w-1)
	return c0, c1
}

// renderHUD draws the score, lives, and level indicator.
func renderHUD(dst *core.Screen, f Frame) {
	score, lives, level := f.HUD()
	dst.DrawText(1, 0, score)
	dst.DrawTextCentered(0, lives)
	dst.DrawText(dst.Width()-len(level)-1, 0, level)
}

// renderBlocks draws every present block on the row of its centre.
func renderBlocks(dst *core.Screen, f Frame, p projection) {
	for _, b := range f.Blocks {
		glyph := BlockGlyph
		if !b.Breakable() {
			glyph = UnbreakableGlyph
		}
		c0, c1 := p.span(b.Position.X-f.BlockHalfSize, b.Position.X+f.BlockHalfSize)
		y := p.row(b.Position.Y)
		for x := c0; x <= c1; x++ {
			dst.SetColored(x, y, glyph, BlockColor(b.ID))
		}
	}
}

// renderPaddle draws the player's paddle.
func renderPaddle(dst *core.Screen, f Frame, p projection) {
	c0, c1 := p.span(f.Paddle.Min.X, f.Paddle.Max.X)
	y := p.row(f.Paddle.Min.Y)
	for x := c0; x <= c1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorWhite)
	}
}

// renderBalls draws all balls.
func renderBalls(dst *core.Screen, f Frame, p projection) {
	for _, b := range f.Balls {
		if b.Position.Y >= f.Height {
			continue
		}
		dst.SetColored(p.col(b.Position.X), p.row(b.Position.Y), BallChar, core.ColorWhite)
	}
}

// renderOverlay draws game state messages.
func renderOverlay(dst *core.Screen, f Frame) {
	title, subtitle := f.Overlay()
	switch {
	case title != "":
		drawCenteredBox(dst, title, subtitle)
	case subtitle != "":
		dst.DrawTextCentered(dst.Height()-1, subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register the games with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_endless", func() registry.Game {
		return NewEndless()
	})
}
