package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseBreakout(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Errorf("embedded defaults differ from DefaultBreakoutConfig:\n%+v\n%+v", cfg, DefaultBreakoutConfig())
	}
}

func TestLoadBreakoutCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	data := []byte("ball:\n  speed: 7\ngameplay:\n  lives: 1\n  multiply_pattern: triad\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if cfg.Ball.Speed != 7 {
		t.Errorf("Ball.Speed = %v, expected 7", cfg.Ball.Speed)
	}
	if cfg.Gameplay.Lives != 1 {
		t.Errorf("Lives = %d, expected 1", cfg.Gameplay.Lives)
	}
	if cfg.Gameplay.MultiplyPattern != MultiplyTriad {
		t.Errorf("MultiplyPattern = %q, expected triad", cfg.Gameplay.MultiplyPattern)
	}
	// Untouched keys keep their defaults.
	if cfg.Ball.Radius != DefaultBreakoutConfig().Ball.Radius {
		t.Errorf("Ball.Radius = %v, expected default", cfg.Ball.Radius)
	}
}

func TestLoadBreakoutCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBreakout(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: expected os.ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ball: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("ball:\n  radius: 15\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("oversized ball: expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
		ok     bool
	}{
		{"defaults", func(*BreakoutConfig) {}, true},
		{"zero field", func(c *BreakoutConfig) { c.Field.Width = 0 }, false},
		{"zero cell", func(c *BreakoutConfig) { c.Blocks.CellSize = 0 }, false},
		{"spacing swallows block", func(c *BreakoutConfig) { c.Blocks.Spacing = 10 }, false},
		{"ball as large as half a cell", func(c *BreakoutConfig) { c.Ball.Radius = 10 }, false},
		{"ball just under half a cell", func(c *BreakoutConfig) { c.Ball.Radius = 9.5 }, true},
		{"zero speed", func(c *BreakoutConfig) { c.Ball.Speed = 0 }, false},
		{"paddle wider than field", func(c *BreakoutConfig) { c.Paddle.Width = 900 }, false},
		{"paddle below field", func(c *BreakoutConfig) { c.Paddle.Y = 590 }, false},
		{"no lives", func(c *BreakoutConfig) { c.Gameplay.Lives = 0 }, false},
		{"unknown pattern", func(c *BreakoutConfig) { c.Gameplay.MultiplyPattern = "quad" }, false},
		{"triad pattern", func(c *BreakoutConfig) { c.Gameplay.MultiplyPattern = MultiplyTriad }, true},
		{"endless min wider than paddle", func(c *BreakoutConfig) { c.Endless.MinPaddleWidth = 200 }, false},
		{"endless disabled", func(c *BreakoutConfig) { c.Endless.MinPaddleWidth = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyBreakoutPreset(t *testing.T) {
	def := DefaultBreakoutConfig()

	easy := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&easy, DifficultyEasy)
	hard := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&hard, DifficultyHard)
	normal := DefaultBreakoutConfig()
	normal.Ball.Speed = 9
	ApplyBreakoutPreset(&normal, DifficultyNormal)

	if easy.Ball.Speed >= def.Ball.Speed || hard.Ball.Speed <= def.Ball.Speed {
		t.Errorf("speeds easy=%v hard=%v should bracket default %v", easy.Ball.Speed, hard.Ball.Speed, def.Ball.Speed)
	}
	if easy.Paddle.Width <= hard.Paddle.Width {
		t.Errorf("easy paddle %v should be wider than hard %v", easy.Paddle.Width, hard.Paddle.Width)
	}
	if hard.Gameplay.Lives != 1 {
		t.Errorf("hard lives = %d, expected 1", hard.Gameplay.Lives)
	}
	if normal.Ball.Speed != def.Ball.Speed {
		t.Errorf("normal preset should restore default speed, got %v", normal.Ball.Speed)
	}

	for name, cfg := range map[string]BreakoutConfig{"easy": easy, "normal": normal, "hard": hard} {
		if err := Validate(cfg); err != nil {
			t.Errorf("%s preset invalid: %v", name, err)
		}
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, ok := ParseDifficultyPreset(s); !ok {
			t.Errorf("ParseDifficultyPreset(%q) should succeed", s)
		}
	}
	if _, ok := ParseDifficultyPreset("insane"); ok {
		t.Error("unknown preset should fail")
	}
}

func TestProgressionPaddleWidth(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	cfg.Paddle.Width = 100
	cfg.Endless = BreakoutEndless{MinPaddleWidth: 50, MaxAtWave: 10}
	p := NewProgression(cfg)

	tests := []struct {
		wave     int
		expected float64
	}{
		{0, 100},
		{5, 75},
		{10, 50},
		{25, 50}, // clamped
	}
	for _, tc := range tests {
		if got := p.PaddleWidth(tc.wave); got != tc.expected {
			t.Errorf("PaddleWidth(%d) = %v, expected %v", tc.wave, got, tc.expected)
		}
	}

	cfg.Endless.MinPaddleWidth = 0
	if p := NewProgression(cfg); p.IsEnabled() || p.PaddleWidth(7) != 100 {
		t.Error("disabled progression should keep the base width")
	}
}
