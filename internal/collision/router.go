// Package collision routes physics contacts between the player and active
// objects to the object contact rules and applies their outcomes.
package collision

import (
	"fmt"

	"github.com/vovakirdan/uberjump/internal/object"
	"github.com/vovakirdan/uberjump/internal/physics"
	"github.com/vovakirdan/uberjump/internal/state"
)

// InvariantViolation is raised (by panic) when a contact cannot have come
// from a correctly masked physics world.
type InvariantViolation struct {
	Contact physics.Contact
	Reason  string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("collision: invariant violated by contact %d-%d: %s", v.Contact.A, v.Contact.B, v.Reason)
}

// Policy decides what each star subtype is worth.
type Policy struct {
	Normal  state.StarAward
	Special state.StarAward
}

// Award returns what collecting the star is worth.
func (p Policy) Award(t object.StarType) state.StarAward {
	if t == object.StarSpecial {
		return p.Special
	}
	return p.Normal
}

// Result reports what routing one contact did.
type Result struct {
	Object  object.Object
	Outcome object.Outcome
	Award   state.StarAward
}

// Router owns no state of its own; it mutates the engine, the active set
// and the game state it was built with.
type Router struct {
	engine  physics.Engine
	objects *object.Set
	state   *state.GameState
	player  physics.BodyID
	tuning  object.Tuning
	policy  Policy

	removed map[physics.BodyID]bool
}

// NewRouter creates a router for one session.
func NewRouter(engine physics.Engine, objects *object.Set, gs *state.GameState, player physics.BodyID, tuning object.Tuning, policy Policy) *Router {
	return &Router{
		engine:  engine,
		objects: objects,
		state:   gs,
		player:  player,
		tuning:  tuning,
		policy:  policy,
		removed: make(map[physics.BodyID]bool),
	}
}

// Remove drops an object from both the active set and the engine.
// Removing an absent object is a no-op.
func (r *Router) Remove(id physics.BodyID) bool {
	r.engine.Remove(id)
	if !r.objects.Remove(id) {
		return false
	}
	r.removed[id] = true
	return true
}

// Forget clears the record of removed objects. The game loop calls it
// once per tick after routing.
func (r *Router) Forget() {
	clear(r.removed)
}

// Route resolves a contact. It panics with *InvariantViolation if neither or
// both bodies are the player, or if the other body is not a known object.
func (r *Router) Route(c physics.Contact) Result {
	if c.A == r.player && c.B == r.player {
		panic(&InvariantViolation{Contact: c, Reason: "both bodies are the player"})
	}
	otherID, ok := c.Other(r.player)
	if !ok {
		panic(&InvariantViolation{Contact: c, Reason: "neither body is the player"})
	}

	obj, ok := r.objects.Get(otherID)
	if !ok {
		if r.removed[otherID] {
			return Result{}
		}
		panic(&InvariantViolation{Contact: c, Reason: fmt.Sprintf("body %d is not a game object", otherID)})
	}

	player, ok := r.engine.Body(r.player)
	if !ok {
		panic(&InvariantViolation{Contact: c, Reason: "player body missing from engine"})
	}

	out := object.ResolveContact(obj, player.Velocity, r.tuning)
	res := Result{Object: obj, Outcome: out}

	// Velocity first, then removal.
	if out.SetVelocity {
		player.Velocity = out.Velocity
	}
	if out.Remove {
		r.Remove(obj.ID)
	}
	if out.HUD && obj.Kind == object.KindStar {
		res.Award = r.policy.Award(obj.Star)
		r.state.AddStar(res.Award)
	}
	return res
}
