package game

import "github.com/vovakirdan/uberjump/internal/core"

// DefaultSmoothing is the weight of a fresh tilt sample.
const DefaultSmoothing = 0.75

// Smooth is the stock low-pass tilt filter: 0.75*raw + 0.25*prev.
func Smooth(raw, prev float64) float64 {
	return SmoothWeighted(raw, prev, DefaultSmoothing)
}

// SmoothWeighted blends a raw sample into the previous smoothed value.
func SmoothWeighted(raw, prev, weight float64) float64 {
	return weight*raw + (1-weight)*prev
}

// TiltSampler turns discrete key presses into a raw tilt signal, standing in
// for an accelerometer. Presses nudge the tilt; every sample decays it.
type TiltSampler struct {
	Step  float64 // tilt added per press
	Decay float64 // multiplier applied after each sample
	Max   float64 // absolute clamp

	raw float64
}

// NewTiltSampler creates a sampler with the given press step, decay and clamp.
func NewTiltSampler(step, decay, max float64) *TiltSampler {
	return &TiltSampler{Step: step, Decay: decay, Max: max}
}

// Nudge moves the tilt one step in the direction of the action.
// ActionLevel snaps it back to zero.
func (t *TiltSampler) Nudge(a core.Action) {
	switch a {
	case core.ActionLeft:
		t.raw -= t.Step
	case core.ActionRight:
		t.raw += t.Step
	case core.ActionLevel:
		t.raw = 0
	}
	if t.Max > 0 {
		t.raw = core.ClampF(t.raw, -t.Max, t.Max)
	}
}

// Sample returns the current raw tilt and then decays it.
func (t *TiltSampler) Sample() float64 {
	v := t.raw
	t.raw *= t.Decay
	return v
}

// Raw returns the current raw tilt without sampling.
func (t *TiltSampler) Raw() float64 {
	return t.raw
}
