package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults drifted from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: -500\nscoring:\n  special_score: 250\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != -500 || cfg.Scoring.SpecialScore != 250 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Physics.TickRate != 60 || cfg.Contact.StarBoost != 400 {
		t.Errorf("unnamed fields should keep defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		want   string
	}{
		{"tick rate", func(c *GameConfig) { c.Physics.TickRate = 0 }, "tick_rate"},
		{"mass", func(c *GameConfig) { c.Player.Mass = -1 }, "player.mass"},
		{"radius", func(c *GameConfig) { c.Player.Radius = 0 }, "player.radius"},
		{"smoothing", func(c *GameConfig) { c.Input.Smoothing = 1.5 }, "smoothing"},
		{"camera", func(c *GameConfig) { c.Camera.MidgroundDivisor = 0 }, "divisors"},
		{"fall limit", func(c *GameConfig) { c.Run.FallLimit = 0 }, "fall_limit"},
		{"sizes", func(c *GameConfig) { c.Physics.PlatformWidth = 0 }, "sizes"},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("run:\n  fall_limit: 1200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Run.FallLimit != 1200 {
		t.Errorf("FallLimit = %g, expected 1200", cfg.Run.FallLimit)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("a missing custom path must be an error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  tick_rate: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("an invalid custom config must be an error")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() without files = %+v, expected defaults", cfg)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", FileName), []byte("player:\n  tilt_speed: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.TiltSpeed != 300 {
		t.Errorf("TiltSpeed = %g, expected local override 300", cfg.Player.TiltSpeed)
	}
}
