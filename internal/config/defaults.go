package config

import (
	_ "embed"
)

//go:embed defaults/uberjump.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration.
func Default() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Gravity:        -300,
			TickRate:       60,
			StarRadius:     10,
			PlatformWidth:  60,
			PlatformHeight: 8,
		},
		Player: PlayerConfig{
			StartY:        80,
			Radius:        10,
			Mass:          0.05,
			LaunchImpulse: 20, // 400 units/s at the default mass
			TiltSpeed:     400,
			WrapMargin:    20,
		},
		Contact: ContactConfig{
			StarBoost:      400,
			PlatformBounce: 250,
			CullMargin:     300,
		},
		Camera: CameraConfig{
			Threshold:         200,
			BackgroundDivisor: 10,
			MidgroundDivisor:  4,
		},
		Input: InputConfig{
			Smoothing: 0.75,
			SampleMS:  200,
			KeyStep:   0.5,
			KeyDecay:  0.6,
			MaxTilt:   1,
		},
		Scoring: ScoringConfig{
			NormalStars:   1,
			NormalScore:   20,
			SpecialStars:  5,
			SpecialScore:  100,
			HeightScoring: false,
		},
		Run: RunConfig{
			FallLimit:     800,
			Branches:      10,
			BranchSpacing: 500,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
