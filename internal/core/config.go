package core

// RuntimeConfig contains configuration passed to a session at initialization.
// The terminal frontend derives it from the window; tests build it directly.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic decoration
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the simulated time per tick in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// Status represents the externally visible state of a run.
type Status struct {
	Score     int  // Current score
	Stars     int  // Stars collected (lifetime, persisted)
	Active    bool // Whether the start gesture has been received
	GameOver  bool // Whether the run has ended
	Completed bool // Whether the run ended by reaching the level end
	Paused    bool // Whether the run is paused
}
