package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that is unreadable, malformed or invalid is an
// error; the other locations are skipped silently.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBreakout(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := ParseBreakout(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBreakout decodes YAML over the defaults and validates the result.
func ParseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the geometry is usable by the physics: positive
// sizes, a ball small enough that it can never span more than two cells,
// and a paddle inside the field.
func Validate(cfg BreakoutConfig) error {
	switch {
	case cfg.Field.Width <= 0 || cfg.Field.Height <= 0:
		return fmt.Errorf("%w: field size %vx%v", ErrInvalid, cfg.Field.Width, cfg.Field.Height)
	case cfg.Blocks.CellSize <= 0:
		return fmt.Errorf("%w: cell_size %v", ErrInvalid, cfg.Blocks.CellSize)
	case cfg.Blocks.Spacing < 0 || cfg.Blocks.Spacing >= cfg.Blocks.CellSize/2:
		return fmt.Errorf("%w: spacing %v must be in [0, cell_size/2)", ErrInvalid, cfg.Blocks.Spacing)
	case cfg.Ball.Radius <= 0 || cfg.Ball.Radius >= cfg.Blocks.CellSize/2:
		return fmt.Errorf("%w: ball radius %v must be in (0, cell_size/2)", ErrInvalid, cfg.Ball.Radius)
	case cfg.Ball.Speed <= 0:
		return fmt.Errorf("%w: ball speed %v", ErrInvalid, cfg.Ball.Speed)
	case cfg.Paddle.Width <= 0 || cfg.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle size %vx%v", ErrInvalid, cfg.Paddle.Width, cfg.Paddle.Height)
	case cfg.Paddle.Width > cfg.Field.Width:
		return fmt.Errorf("%w: paddle wider than field", ErrInvalid)
	case cfg.Paddle.Y <= 0 || cfg.Paddle.Y+cfg.Paddle.Height > cfg.Field.Height:
		return fmt.Errorf("%w: paddle y %v outside field", ErrInvalid, cfg.Paddle.Y)
	case cfg.Paddle.KeyboardSpeed < 0:
		return fmt.Errorf("%w: keyboard_speed %v", ErrInvalid, cfg.Paddle.KeyboardSpeed)
	case cfg.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives %d", ErrInvalid, cfg.Gameplay.Lives)
	case cfg.Gameplay.BlockPoints < 0:
		return fmt.Errorf("%w: block_points %d", ErrInvalid, cfg.Gameplay.BlockPoints)
	case cfg.Gameplay.ServeDelay < 0:
		return fmt.Errorf("%w: serve_delay %d", ErrInvalid, cfg.Gameplay.ServeDelay)
	}

	switch cfg.Gameplay.MultiplyPattern {
	case MultiplyPair, MultiplyTriad:
	default:
		return fmt.Errorf("%w: unknown multiply_pattern %q", ErrInvalid, cfg.Gameplay.MultiplyPattern)
	}

	return validateEndless(cfg)
}

func validateEndless(cfg BreakoutConfig) error {
	e := cfg.Endless
	if e.MinPaddleWidth < 0 || e.MinPaddleWidth > cfg.Paddle.Width {
		return fmt.Errorf("%w: endless min_paddle_width %v must be in [0, paddle width]", ErrInvalid, e.MinPaddleWidth)
	}
	if e.MaxAtWave < 0 {
		return fmt.Errorf("%w: endless max_at_wave %d", ErrInvalid, e.MaxAtWave)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Ball speed is set once here; it never changes during play.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	def := DefaultBreakoutConfig()

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = def.Paddle.Width * 1.4
		cfg.Ball.Speed = def.Ball.Speed * 0.8
	case DifficultyNormal:
		cfg.Gameplay.Lives = def.Gameplay.Lives
		cfg.Paddle.Width = def.Paddle.Width
		cfg.Ball.Speed = def.Ball.Speed
	case DifficultyHard:
		cfg.Gameplay.Lives = 1
		cfg.Paddle.Width = def.Paddle.Width * 0.7
		cfg.Ball.Speed = def.Ball.Speed * 1.4
	}

	if cfg.Endless.MinPaddleWidth > cfg.Paddle.Width {
		cfg.Endless.MinPaddleWidth = cfg.Paddle.Width
	}
}
