// Package config provides YAML-based tuning for the jump game: physics,
// player, contact, camera, input, scoring and run parameters.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains every tunable of a session.
type GameConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Contact ContactConfig `yaml:"contact"`
	Camera  CameraConfig  `yaml:"camera"`
	Input   InputConfig   `yaml:"input"`
	Scoring ScoringConfig `yaml:"scoring"`
	Run     RunConfig     `yaml:"run"`
}

// PhysicsConfig defines the world integration parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`   // vertical acceleration, negative is down
	TickRate       int     `yaml:"tick_rate"` // simulation ticks per second
	StarRadius     float64 `yaml:"star_radius"`
	PlatformWidth  float64 `yaml:"platform_width"`
	PlatformHeight float64 `yaml:"platform_height"`
}

// PlayerConfig defines the player body and its movement.
type PlayerConfig struct {
	StartY        float64 `yaml:"start_y"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	LaunchImpulse float64 `yaml:"launch_impulse"`
	TiltSpeed     float64 `yaml:"tilt_speed"`  // horizontal velocity at full tilt
	WrapMargin    float64 `yaml:"wrap_margin"` // distance past an edge before wrapping
}

// ContactConfig defines the velocities contacts hand to the player.
type ContactConfig struct {
	StarBoost      float64 `yaml:"star_boost"`
	PlatformBounce float64 `yaml:"platform_bounce"`
	CullMargin     float64 `yaml:"cull_margin"`
}

// CameraConfig defines the parallax scroll.
type CameraConfig struct {
	Threshold         float64 `yaml:"threshold"`          // player height the camera starts following at
	BackgroundDivisor float64 `yaml:"background_divisor"` // background moves 1/n of the foreground
	MidgroundDivisor  float64 `yaml:"midground_divisor"`
}

// InputConfig defines the tilt sampler.
type InputConfig struct {
	Smoothing float64 `yaml:"smoothing"` // weight of the raw sample
	SampleMS  int     `yaml:"sample_ms"` // sampler period in milliseconds
	KeyStep   float64 `yaml:"key_step"`  // tilt added per key press
	KeyDecay  float64 `yaml:"key_decay"` // raw tilt multiplier per sample
	MaxTilt   float64 `yaml:"max_tilt"`  // raw tilt clamp
}

// ScoringConfig defines what pickups and height are worth.
type ScoringConfig struct {
	NormalStars   int  `yaml:"normal_stars"`
	NormalScore   int  `yaml:"normal_score"`
	SpecialStars  int  `yaml:"special_stars"`
	SpecialScore  int  `yaml:"special_score"`
	HeightScoring bool `yaml:"height_scoring"`
}

// RunConfig defines how a run ends and the scenery it scrolls past.
type RunConfig struct {
	FallLimit     float64 `yaml:"fall_limit"` // drop below the best height that ends a run
	Branches      int     `yaml:"branches"`
	BranchSpacing float64 `yaml:"branch_spacing"`
}

// Validate reports the first setting that would make a session unplayable.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Physics.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("physics.tick_rate must be positive, got %d", c.Physics.TickRate))
	}
	if c.Physics.StarRadius <= 0 || c.Physics.PlatformWidth <= 0 || c.Physics.PlatformHeight <= 0 {
		errs = append(errs, errors.New("physics: object sizes must be positive"))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %g", c.Player.Radius))
	}
	if c.Player.Mass <= 0 {
		errs = append(errs, fmt.Errorf("player.mass must be positive, got %g", c.Player.Mass))
	}
	if c.Camera.BackgroundDivisor <= 0 || c.Camera.MidgroundDivisor <= 0 {
		errs = append(errs, errors.New("camera: divisors must be positive"))
	}
	if c.Input.Smoothing < 0 || c.Input.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("input.smoothing must be within [0, 1], got %g", c.Input.Smoothing))
	}
	if c.Input.SampleMS <= 0 {
		errs = append(errs, fmt.Errorf("input.sample_ms must be positive, got %d", c.Input.SampleMS))
	}
	if c.Run.FallLimit <= 0 {
		errs = append(errs, fmt.Errorf("run.fall_limit must be positive, got %g", c.Run.FallLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
