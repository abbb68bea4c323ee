package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Paddle is the player's horizontal bar. Position.X is the centre and
// Position.Y the top edge; only X changes during play.
type Paddle struct {
	Position core.Vec2
	Width    float64
	Height   float64
}

// NewPaddle creates a paddle centred on x with its top edge at y.
func NewPaddle(x, y, width, height float64) *Paddle {
	return &Paddle{
		Position: core.V2(x, y),
		Width:    width,
		Height:   height,
	}
}

// MoveTo places the paddle centre at x. No bounds are applied here; the
// input side decides what range the pointer may cover.
func (p *Paddle) MoveTo(x float64) {
	p.Position.X = x
}

// HalfWidth returns half the paddle width.
func (p *Paddle) HalfWidth() float64 {
	return p.Width / 2
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() core.Box {
	return core.Box{
		Min: core.V2(p.Position.X-p.HalfWidth(), p.Position.Y),
		Max: core.V2(p.Position.X+p.HalfWidth(), p.Position.Y+p.Height),
	}
}
