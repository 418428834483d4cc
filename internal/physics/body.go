// Package physics implements the gravity and contact-test collaborator the
// game loop drives once per tick. Bodies never push each other: collision
// masks are zero everywhere and only contact tests are evaluated.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Category is a collision category bitmask.
type Category uint32

// Category bitmasks. The player is 0x00 so it never matches any contact-test
// mask, including its own; only objects report contacts against it.
const (
	CategoryPlayer   Category = 0x00
	CategoryStar     Category = 0x01
	CategoryPlatform Category = 0x02
)

// BodyID identifies a body inside an engine.
type BodyID uint32

// ShapeKind selects the geometry of a body.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is the contact geometry of a body, centered on its position.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // circle only
	Width  float64 // rect only
	Height float64 // rect only
}

// Circle returns a circle shape.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Rect returns a rectangle shape.
func Rect(w, h float64) Shape {
	return Shape{Kind: ShapeRect, Width: w, Height: h}
}

// Body is a simulated entity. Static bodies (Dynamic == false) are never
// integrated, which is how a waiting player is kept still.
type Body struct {
	ID          BodyID
	Position    mgl64.Vec2
	Velocity    mgl64.Vec2
	Shape       Shape
	Mass        float64
	Dynamic     bool
	Category    Category
	ContactTest Category
	Collision   Category
}

// Contact is a begin-contact event between two bodies.
type Contact struct {
	A, B BodyID
}

// Other returns the participant that is not id, and whether id took part at all.
func (c Contact) Other(id BodyID) (BodyID, bool) {
	switch id {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// Tests reports whether a contact between a and b should be reported.
func Tests(a, b *Body) bool {
	return a.ContactTest&b.Category != 0 || b.ContactTest&a.Category != 0
}

// Overlaps reports whether two shapes touch. Touching edges count.
func Overlaps(a, b *Body) bool {
	switch {
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		r := a.Shape.Radius + b.Shape.Radius
		d := a.Position.Sub(b.Position)
		return d.Dot(d) <= r*r
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeRect:
		return circleRect(a, b)
	case a.Shape.Kind == ShapeRect && b.Shape.Kind == ShapeCircle:
		return circleRect(b, a)
	default:
		dx := a.Position.X() - b.Position.X()
		dy := a.Position.Y() - b.Position.Y()
		return abs(dx) <= (a.Shape.Width+b.Shape.Width)/2 &&
			abs(dy) <= (a.Shape.Height+b.Shape.Height)/2
	}
}

// circleRect tests a circle against an axis-aligned rectangle.
func circleRect(c, r *Body) bool {
	halfW, halfH := r.Shape.Width/2, r.Shape.Height/2
	nearest := mgl64.Vec2{
		clamp(c.Position.X(), r.Position.X()-halfW, r.Position.X()+halfW),
		clamp(c.Position.Y(), r.Position.Y()-halfH, r.Position.Y()+halfH),
	}
	d := c.Position.Sub(nearest)
	return d.Dot(d) <= c.Shape.Radius*c.Shape.Radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
