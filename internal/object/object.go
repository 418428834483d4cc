// Package object defines the game objects the player can touch and the pure
// contact-resolution rules for each of them.
package object

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/uberjump/internal/physics"
)

// Kind tags the variant of an Object.
type Kind int

const (
	KindNone Kind = iota
	KindStar
	KindPlatform
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlatform:
		return "platform"
	default:
		return "none"
	}
}

// StarType is the star subtype, coded as in level files.
type StarType int

const (
	StarNormal StarType = iota
	StarSpecial
)

// PlatformType is the platform subtype, coded as in level files.
type PlatformType int

const (
	PlatformNormal PlatformType = iota
	PlatformBreak
)

// ParseStarType validates a level-file subtype code.
func ParseStarType(code int) (StarType, bool) {
	switch StarType(code) {
	case StarNormal, StarSpecial:
		return StarType(code), true
	}
	return 0, false
}

// ParsePlatformType validates a level-file subtype code.
func ParsePlatformType(code int) (PlatformType, bool) {
	switch PlatformType(code) {
	case PlatformNormal, PlatformBreak:
		return PlatformType(code), true
	}
	return 0, false
}

// Object is a star or a platform. Only the subtype field matching Kind is meaningful.
type Object struct {
	ID       physics.BodyID
	Kind     Kind
	Star     StarType
	Platform PlatformType
	Position mgl64.Vec2
}

// NewStar creates a star at the given world position.
func NewStar(pos mgl64.Vec2, t StarType) Object {
	return Object{Kind: KindStar, Star: t, Position: pos}
}

// NewPlatform creates a platform at the given world position.
func NewPlatform(pos mgl64.Vec2, t PlatformType) Object {
	return Object{Kind: KindPlatform, Platform: t, Position: pos}
}

// Category returns the collision category of the object.
func (o Object) Category() physics.Category {
	switch o.Kind {
	case KindStar:
		return physics.CategoryStar
	case KindPlatform:
		return physics.CategoryPlatform
	default:
		return 0
	}
}

// String describes the object for logs and test failures.
func (o Object) String() string {
	sub := ""
	switch o.Kind {
	case KindStar:
		sub = "normal"
		if o.Star == StarSpecial {
			sub = "special"
		}
	case KindPlatform:
		sub = "normal"
		if o.Platform == PlatformBreak {
			sub = "break"
		}
	}
	return fmt.Sprintf("%s#%d(%s @ %.1f,%.1f)", o.Kind, o.ID, sub, o.Position.X(), o.Position.Y())
}
