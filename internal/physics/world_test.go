package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newPlayer(x, y float64) *Body {
	return &Body{
		ID:          1,
		Position:    mgl64.Vec2{x, y},
		Shape:       Circle(10),
		Mass:        0.05,
		Dynamic:     true,
		Category:    CategoryPlayer,
		ContactTest: CategoryStar | CategoryPlatform,
	}
}

func TestTestsMasks(t *testing.T) {
	player := newPlayer(0, 0)
	star := &Body{ID: 2, Category: CategoryStar}
	platform := &Body{ID: 3, Category: CategoryPlatform}
	other := newPlayer(0, 0)

	tests := []struct {
		name     string
		a, b     *Body
		expected bool
	}{
		{"player vs star", player, star, true},
		{"star vs player", star, player, true},
		{"player vs platform", player, platform, true},
		{"star vs platform", star, platform, false},
		{"player vs player", player, other, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tests(tc.a, tc.b); got != tc.expected {
				t.Errorf("Tests() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	circle := func(x, y, r float64) *Body {
		return &Body{Position: mgl64.Vec2{x, y}, Shape: Circle(r)}
	}
	rect := func(x, y, w, h float64) *Body {
		return &Body{Position: mgl64.Vec2{x, y}, Shape: Rect(w, h)}
	}

	tests := []struct {
		name     string
		a, b     *Body
		expected bool
	}{
		{"circles apart", circle(0, 0, 5), circle(20, 0, 5), false},
		{"circles touching", circle(0, 0, 5), circle(10, 0, 5), true},
		{"circle above rect", circle(0, 20, 5), rect(0, 0, 40, 10), false},
		{"circle resting on rect", circle(0, 10, 5), rect(0, 0, 40, 10), true},
		{"rect vs circle corner miss", rect(0, 0, 10, 10), circle(9, 9, 5), false},
		{"rects overlapping", rect(0, 0, 10, 10), rect(8, 8, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestIntegrateSkipsStaticBodies(t *testing.T) {
	w := NewWorld(mgl64.Vec2{0, -300})
	p := newPlayer(100, 80)
	p.Dynamic = false
	w.Add(p)

	w.Integrate(1.0 / 60.0)

	if p.Velocity.Y() != 0 || p.Position.Y() != 80 {
		t.Errorf("static body moved: pos=%v vel=%v", p.Position, p.Velocity)
	}

	p.Dynamic = true
	w.Integrate(0.5)
	if p.Velocity.Y() != -150 {
		t.Errorf("velocity after 0.5s = %f, expected -150", p.Velocity.Y())
	}
	if p.Position.Y() != 80-75 {
		t.Errorf("position after 0.5s = %f, expected 5", p.Position.Y())
	}
}

func TestApplyImpulse(t *testing.T) {
	w := NewWorld(mgl64.Vec2{})
	p := newPlayer(0, 0)
	w.Add(p)

	w.ApplyImpulse(p.ID, mgl64.Vec2{0, 20})
	if p.Velocity.Y() != 400 {
		t.Errorf("velocity after impulse = %f, expected 400", p.Velocity.Y())
	}

	p.Dynamic = false
	p.Velocity = mgl64.Vec2{}
	w.ApplyImpulse(p.ID, mgl64.Vec2{0, 20})
	if p.Velocity.Y() != 0 {
		t.Error("impulse should not affect static bodies")
	}
}

func TestDetectContactsBeginOnly(t *testing.T) {
	w := NewWorld(mgl64.Vec2{})
	p := newPlayer(0, 0)
	star := &Body{ID: 2, Position: mgl64.Vec2{5, 0}, Shape: Circle(5), Category: CategoryStar}
	w.Add(p)
	w.Add(star)

	first := w.DetectContacts()
	if len(first) != 1 || first[0] != (Contact{A: 1, B: 2}) {
		t.Fatalf("first DetectContacts() = %v, expected one contact 1-2", first)
	}

	if again := w.DetectContacts(); len(again) != 0 {
		t.Errorf("continued overlap should not re-report, got %v", again)
	}

	p.Position = mgl64.Vec2{100, 0}
	w.DetectContacts()
	p.Position = mgl64.Vec2{0, 0}
	if re := w.DetectContacts(); len(re) != 1 {
		t.Errorf("separating and re-entering should report again, got %v", re)
	}
}

func TestDetectContactsIgnoresStaticPairs(t *testing.T) {
	w := NewWorld(mgl64.Vec2{})
	w.Add(&Body{ID: 2, Shape: Circle(5), Category: CategoryStar, ContactTest: CategoryPlatform})
	w.Add(&Body{ID: 3, Shape: Rect(10, 10), Category: CategoryPlatform})

	if got := w.DetectContacts(); len(got) != 0 {
		t.Errorf("static bodies should never report contacts, got %v", got)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	w := NewWorld(mgl64.Vec2{})
	p := newPlayer(0, 0)
	star := &Body{ID: 2, Shape: Circle(5), Category: CategoryStar}
	w.Add(p)
	w.Add(star)
	w.DetectContacts()

	if !w.Remove(2) {
		t.Error("first Remove should report removal")
	}
	if w.Remove(2) {
		t.Error("second Remove should be a no-op")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
	if _, ok := w.Body(2); ok {
		t.Error("removed body should not be found")
	}
}

func TestContactOther(t *testing.T) {
	c := Contact{A: 4, B: 9}
	if other, ok := c.Other(4); !ok || other != 9 {
		t.Errorf("Other(4) = %d, %v", other, ok)
	}
	if other, ok := c.Other(9); !ok || other != 4 {
		t.Errorf("Other(9) = %d, %v", other, ok)
	}
	if _, ok := c.Other(1); ok {
		t.Error("Other of a non-participant should report false")
	}
}
