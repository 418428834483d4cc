package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Engine is the capability the game loop needs from a physics backend.
type Engine interface {
	Add(b *Body)
	Remove(id BodyID) bool
	Body(id BodyID) (*Body, bool)
	ApplyImpulse(id BodyID, impulse mgl64.Vec2)
	Integrate(dt float64)
	DetectContacts() []Contact
}

type pairKey struct {
	lo, hi BodyID
}

func keyOf(a, b BodyID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// World is a minimal 2D engine: uniform gravity, explicit Euler integration
// and begin-contact detection between dynamic bodies and everything else.
type World struct {
	gravity  mgl64.Vec2
	bodies   map[BodyID]*Body
	order    []BodyID
	touching map[pairKey]bool
}

// NewWorld creates an empty world with the given gravity vector.
func NewWorld(gravity mgl64.Vec2) *World {
	return &World{
		gravity:  gravity,
		bodies:   make(map[BodyID]*Body),
		touching: make(map[pairKey]bool),
	}
}

// Gravity returns the gravity vector.
func (w *World) Gravity() mgl64.Vec2 {
	return w.gravity
}

// Add registers a body. Adding an ID that already exists replaces it.
func (w *World) Add(b *Body) {
	if _, exists := w.bodies[b.ID]; !exists {
		w.order = append(w.order, b.ID)
	}
	w.bodies[b.ID] = b
}

// Remove drops a body and any contact state it had.
// Removing an unknown body is a no-op and returns false.
func (w *World) Remove(id BodyID) bool {
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	delete(w.bodies, id)

	kept := w.order[:0]
	for _, bid := range w.order {
		if bid != id {
			kept = append(kept, bid)
		}
	}
	w.order = kept

	for k := range w.touching {
		if k.lo == id || k.hi == id {
			delete(w.touching, k)
		}
	}
	return true
}

// Body returns the body with the given ID.
func (w *World) Body(id BodyID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return len(w.bodies)
}

// ApplyImpulse changes a dynamic body's velocity by impulse / mass.
func (w *World) ApplyImpulse(id BodyID, impulse mgl64.Vec2) {
	b, ok := w.bodies[id]
	if !ok || !b.Dynamic {
		return
	}
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / mass))
}

// Integrate advances every dynamic body by dt seconds.
func (w *World) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	for _, id := range w.order {
		b := w.bodies[id]
		if !b.Dynamic {
			continue
		}
		b.Velocity = b.Velocity.Add(w.gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}

// DetectContacts returns the pairs that started touching since the last call,
// in body insertion order. Pairs that keep touching are reported once.
func (w *World) DetectContacts() []Contact {
	var contacts []Contact
	for i, aid := range w.order {
		a := w.bodies[aid]
		for _, bid := range w.order[i+1:] {
			b := w.bodies[bid]
			if !a.Dynamic && !b.Dynamic {
				continue
			}
			if !Tests(a, b) {
				continue
			}
			key := keyOf(aid, bid)
			if Overlaps(a, b) {
				if !w.touching[key] {
					w.touching[key] = true
					contacts = append(contacts, Contact{A: aid, B: bid})
				}
			} else if w.touching[key] {
				delete(w.touching, key)
			}
		}
	}
	return contacts
}

var _ Engine = (*World)(nil)
