package game

import "github.com/vovakirdan/uberjump/internal/config"

// Offsets are the vertical scroll of each parallax layer. Gameplay objects
// live on the foreground layer.
type Offsets struct {
	Background float64
	Midground  float64
	Foreground float64
}

// Camera computes layer offsets from the player height.
type Camera struct {
	Threshold         float64
	BackgroundDivisor float64
	MidgroundDivisor  float64
}

// NewCamera builds a camera from config.
func NewCamera(c config.CameraConfig) Camera {
	return Camera{
		Threshold:         c.Threshold,
		BackgroundDivisor: c.BackgroundDivisor,
		MidgroundDivisor:  c.MidgroundDivisor,
	}
}

// Offsets returns the layer offsets for a player at height y.
// At or below the threshold the camera does not move.
func (c Camera) Offsets(y float64) Offsets {
	if y <= c.Threshold {
		return Offsets{}
	}
	d := y - c.Threshold
	return Offsets{
		Background: -d / c.BackgroundDivisor,
		Midground:  -d / c.MidgroundDivisor,
		Foreground: -d,
	}
}

// Wrap applies the cylindrical horizontal world: leaving more than margin
// past one edge re-enters just past the other.
func Wrap(x, width, margin float64) float64 {
	switch {
	case x < -margin:
		return width + margin
	case x > width+margin:
		return -margin
	default:
		return x
	}
}
