package object

import (
	"github.com/vovakirdan/uberjump/internal/physics"
)

// Set is the active object set. It issues IDs and keeps insertion order,
// which is the order objects are drawn and culled in.
type Set struct {
	next    physics.BodyID
	objects map[physics.BodyID]Object
	order   []physics.BodyID
	dirty   bool
}

// NewSet creates an empty set whose IDs start at first.
func NewSet(first physics.BodyID) *Set {
	return &Set{
		next:    first,
		objects: make(map[physics.BodyID]Object),
	}
}

// Add inserts an object, assigns it a fresh ID and returns the stored copy.
func (s *Set) Add(o Object) Object {
	o.ID = s.next
	s.next++
	s.objects[o.ID] = o
	s.order = append(s.order, o.ID)
	return o
}

// Get returns the object with the given ID.
func (s *Set) Get(id physics.BodyID) (Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// Remove drops an object. Removing an absent ID is a no-op and returns false.
func (s *Set) Remove(id physics.BodyID) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	s.dirty = true
	return true
}

// Len returns the number of active objects.
func (s *Set) Len() int {
	return len(s.objects)
}

// Each calls fn for every active object in insertion order.
// fn may remove objects, including the current one.
func (s *Set) Each(fn func(Object)) {
	s.compact()
	for _, id := range append([]physics.BodyID(nil), s.order...) {
		if o, ok := s.objects[id]; ok {
			fn(o)
		}
	}
}

// Objects returns the active objects in insertion order.
func (s *Set) Objects() []Object {
	out := make([]Object, 0, len(s.objects))
	s.Each(func(o Object) {
		out = append(out, o)
	})
	return out
}

// Count returns how many active objects satisfy fn.
func (s *Set) Count(fn func(Object) bool) int {
	n := 0
	for _, o := range s.objects {
		if fn(o) {
			n++
		}
	}
	return n
}

func (s *Set) compact() {
	if !s.dirty {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := s.objects[id]; ok {
			kept = append(kept, id)
		}
	}
	s.order = kept
	s.dirty = false
}
