package config

import "math"

// Progression calculates endless-mode parameters from the number of waves
// (levels) cleared so far. Ball speed is not among them; it stays constant
// for the whole run.
type Progression struct {
	basePaddle float64
	cfg        BreakoutEndless
}

// NewProgression creates a progression for the given config.
func NewProgression(cfg BreakoutConfig) *Progression {
	return &Progression{
		basePaddle: cfg.Paddle.Width,
		cfg:        cfg.Endless,
	}
}

// IsEnabled returns whether the paddle narrows at all.
func (p *Progression) IsEnabled() bool {
	return p.cfg.MinPaddleWidth > 0 && p.cfg.MinPaddleWidth < p.basePaddle
}

// Level returns the progression level (0.0 to 1.0) after the given number
// of cleared waves.
func (p *Progression) Level(wave int) float64 {
	if !p.IsEnabled() {
		return 0
	}
	maxAt := float64(p.cfg.MaxAtWave)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(float64(wave)/maxAt, 0.0, 1.0)
}

// PaddleWidth returns the paddle width for the given wave.
func (p *Progression) PaddleWidth(wave int) float64 {
	level := p.Level(wave)
	// Width shrinks from base to the configured minimum
	return p.basePaddle - level*(p.basePaddle-p.cfg.MinPaddleWidth)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
