package object

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Tuning holds the velocities contacts hand to the player.
type Tuning struct {
	StarBoost      float64 // vertical velocity after touching a star
	PlatformBounce float64 // vertical velocity after landing on a platform
}

// Outcome is what resolving a contact asks the game loop to do.
// The zero Outcome means the contact had no effect.
type Outcome struct {
	SetVelocity bool       // replace the player velocity with Velocity
	Velocity    mgl64.Vec2 // applied before removal
	Remove      bool       // drop the object from the active set
	HUD         bool       // score or star counters need updating
}

// None reports whether the outcome has no effect at all.
func (o Outcome) None() bool {
	return !o.SetVelocity && !o.Remove && !o.HUD
}

// ResolveContact maps an object touching a player moving at vel to an outcome.
func ResolveContact(obj Object, vel mgl64.Vec2, t Tuning) Outcome {
	switch obj.Kind {
	case KindStar:
		return Outcome{
			SetVelocity: true,
			Velocity:    mgl64.Vec2{vel.X(), t.StarBoost},
			Remove:      true,
			HUD:         true,
		}
	case KindPlatform:
		// Only bounce a falling player.
		if vel.Y() >= 0 {
			return Outcome{}
		}
		return Outcome{
			SetVelocity: true,
			Velocity:    mgl64.Vec2{vel.X(), t.PlatformBounce},
			Remove:      obj.Platform == PlatformBreak,
		}
	default:
		return Outcome{}
	}
}

// ShouldCull reports whether an object at objY is out of reach for a player at playerY.
func ShouldCull(playerY, objY, margin float64) bool {
	return playerY > objY+margin
}
