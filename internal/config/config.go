// Package config provides YAML-based game configuration loading and
// difficulty presets for Breakout.
package config

// BreakoutConfig contains all configuration for the Breakout game.
// Lengths are in field units (pixels of the 800x600 field), speeds in
// field units per tick.
type BreakoutConfig struct {
	Field    BreakoutField    `yaml:"field"`
	Blocks   BreakoutBlocks   `yaml:"blocks"`
	Ball     BreakoutBall     `yaml:"ball"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
	Endless  BreakoutEndless  `yaml:"endless"`
}

// BreakoutField defines the play field size.
type BreakoutField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutBlocks defines the block grid geometry.
type BreakoutBlocks struct {
	CellSize float64 `yaml:"cell_size"` // Side of one grid cell
	Spacing  float64 `yaml:"spacing"`   // Gap between the cell edge and the block
}

// BreakoutBall defines ball parameters.
type BreakoutBall struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

// BreakoutPaddle defines paddle parameters.
type BreakoutPaddle struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Y             float64 `yaml:"y"`              // Top edge of the paddle
	KeyboardSpeed float64 `yaml:"keyboard_speed"` // Movement per tick when steering with keys
}

// BreakoutGameplay defines rules outside the physics.
type BreakoutGameplay struct {
	Lives           int    `yaml:"lives"`
	BlockPoints     int    `yaml:"block_points"`
	MultiplyPattern string `yaml:"multiply_pattern"` // "pair" or "triad"
	ServeDelay      int    `yaml:"serve_delay"`      // Ticks before a new ball may launch
}

// BreakoutEndless defines how endless mode tightens as waves are cleared.
// The paddle narrows linearly from its configured width down to
// MinPaddleWidth, reached after MaxAtWave cleared levels.
type BreakoutEndless struct {
	MinPaddleWidth float64 `yaml:"min_paddle_width"` // 0 disables narrowing
	MaxAtWave      int     `yaml:"max_at_wave"`
}

// Multiply patterns.
const (
	MultiplyPair  = "pair"  // two copies at ±120°
	MultiplyTriad = "triad" // three copies at +90°, +180°, +270°
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset converts a CLI value to a preset.
// An empty string means no preset; unknown values report false.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return "", true
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}
