package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Snapshot contains the complete game state for replay and determinism
// checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64
	PaddleX         float64
	PaddleWidth     float64
	LastPointer     float64 // NaN until a pointer was seen
	Score           int
	Lives           int
	LevelIndex      int
	Wave            int
	BlocksDestroyed int
	State           string
	PausedFrom      string
	ServeDelay      int
	Mode            int // 0=Campaign, 1=Endless

	// Balls in slot order; ids survive a round trip
	NextBallID uint32
	Balls      []BallState

	// Block ids of the current level, row-major
	Cells []uint8
}

// BallState is the serialized form of one ball.
type BallState struct {
	ID    uint32
	X, Y  float64
	Angle float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	balls := make([]BallState, 0, g.balls.Len())
	for i := range g.balls.Len() {
		id, b := g.balls.At(i)
		pos := b.Position()
		balls = append(balls, BallState{
			ID:    uint32(id),
			X:     pos.X,
			Y:     pos.Y,
			Angle: b.Angle(),
		})
	}

	return Snapshot{
		Tick:            uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		PaddleX:         g.paddle.Position.X,
		PaddleWidth:     g.paddle.Width,
		LastPointer:     g.lastPointer,
		Score:           g.score,
		Lives:           g.lives,
		LevelIndex:      g.levelIndex,
		Wave:            g.wave,
		BlocksDestroyed: g.blocksDestroyed,
		State:           g.state,
		PausedFrom:      g.pausedFrom,
		ServeDelay:      g.serveDelay,
		Mode:            int(g.mode),
		NextBallID:      uint32(g.balls.NextID()),
		Balls:           balls,
		Cells:           g.grid.IDs(),
	}
}

// ApplySnapshot restores game state from a snapshot taken from a game with
// the same configuration and playlist.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = int(snap.Tick) //#nosec G115 -- tick count fits in int
	g.paddle.Position.X = snap.PaddleX
	g.paddle.Width = snap.PaddleWidth
	g.lastPointer = snap.LastPointer
	g.score = snap.Score
	g.lives = snap.Lives
	g.levelIndex = snap.LevelIndex
	g.wave = snap.Wave
	g.blocksDestroyed = snap.BlocksDestroyed
	g.state = snap.State
	g.pausedFrom = snap.PausedFrom
	g.serveDelay = snap.ServeDelay
	g.mode = GameMode(snap.Mode)

	// Restore block states
	g.loadLevel()
	if len(snap.Cells) == g.grid.Width()*g.grid.Height() {
		for i, id := range snap.Cells {
			x, y := g.grid.Coords(i)
			g.grid.Place(x, y, id)
		}
	}

	// Restore ball states
	g.balls.Clear()
	for _, bs := range snap.Balls {
		g.balls.restore(BallID(bs.ID), NewBall(core.V2(bs.X, bs.Y), bs.Angle, g.phys))
	}
	g.balls.next = max(g.balls.next, BallID(snap.NextBallID))
}

// restore inserts a ball under a known id.
func (s *BallSet) restore(id BallID, b Ball) {
	s.slots[id] = len(s.balls)
	s.balls = append(s.balls, b)
	s.ids = append(s.ids, id)
	if id >= s.next {
		s.next = id + 1
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleWidth)
	h = h*31 + math.Float64bits(snap.LastPointer)
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlocksDestroyed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ServeDelay)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextBallID)

	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	for _, b := range snap.Balls {
		h = h*31 + uint64(b.ID)
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.Angle)
	}

	for _, c := range snap.Cells {
		h = h*31 + uint64(c)
	}

	return h
}
