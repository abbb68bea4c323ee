package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// The geometry matches an 800x600 field with a 40-cell-wide block grid.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: BreakoutField{
			Width:  800,
			Height: 600,
		},
		Blocks: BreakoutBlocks{
			CellSize: 20,
			Spacing:  1,
		},
		Ball: BreakoutBall{
			Radius: 5,
			Speed:  5,
		},
		Paddle: BreakoutPaddle{
			Width:         100,
			Height:        20,
			Y:             500,
			KeyboardSpeed: 12,
		},
		Gameplay: BreakoutGameplay{
			Lives:           3,
			BlockPoints:     10,
			MultiplyPattern: MultiplyPair,
			ServeDelay:      60, // 1 second at 60 FPS
		},
		Endless: BreakoutEndless{
			MinPaddleWidth: 50,
			MaxAtWave:      10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
