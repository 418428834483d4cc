package game

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/uberjump/internal/config"
	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/hud"
	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/object"
	"github.com/vovakirdan/uberjump/internal/physics"
	"github.com/vovakirdan/uberjump/internal/state"
)

// testRuntime is a 40-column screen: 320 world units, scale factor 1.
func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 24, TickRate: 60, Seed: 7}
}

func emptyLevel(endY int) level.Description {
	return level.Description{ID: "empty", EndY: endY}
}

type harness struct {
	session *Session
	world   *physics.World
	kv      *state.MemoryKV
	updates []hud.State
}

func newHarness(t *testing.T, desc level.Description) *harness {
	t.Helper()
	return newHarnessWith(t, desc, config.Default())
}

func newHarnessWith(t *testing.T, desc level.Description, cfg config.GameConfig) *harness {
	t.Helper()
	h := &harness{kv: state.NewMemoryKV()}
	gs, err := state.Load(h.kv)
	if err != nil {
		t.Fatal(err)
	}
	h.session = New(desc, cfg, gs,
		WithSink(hud.SinkFunc(func(s hud.State) { h.updates = append(h.updates, s) })),
		WithEngine(func(g mgl64.Vec2) physics.Engine {
			h.world = physics.NewWorld(g)
			return h.world
		}),
	)
	if err := h.session.Reset(testRuntime()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return h
}

func (h *harness) player() *physics.Body {
	b, _ := h.world.Body(PlayerID)
	return b
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSessionWaitsForStart(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	h.session.DeliverTilt(1)

	for i := 0; i < 30; i++ {
		res := h.session.Step(frame())
		if res.Status.Active {
			t.Fatal("session started without a start gesture")
		}
	}

	p := h.session.Player()
	if p.Position != (mgl64.Vec2{160, 80}) {
		t.Errorf("waiting player at %v, expected (160, 80)", p.Position)
	}
	if p.Velocity.Y() != 0 {
		t.Errorf("waiting player vy = %g, expected 0", p.Velocity.Y())
	}
}

func TestStartGestureIsOneWay(t *testing.T) {
	h := newHarness(t, emptyLevel(0))

	res := h.session.Step(frame(core.ActionJump))
	if !res.Status.Active {
		t.Fatal("jump should start the run")
	}
	// 400 from the impulse, minus one tick of gravity.
	if vy := h.player().Velocity.Y(); !near(vy, 395) {
		t.Errorf("vy after start = %g, expected 395", vy)
	}

	h.session.Step(frame(core.ActionJump))
	if vy := h.player().Velocity.Y(); !near(vy, 390) {
		t.Errorf("vy after second jump = %g, expected 390 (no second impulse)", vy)
	}
}

func TestTiltSteersAfterStart(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	h.session.Step(frame(core.ActionJump))

	h.session.DeliverTilt(1)
	h.session.DeliverTilt(1)
	if !near(h.session.Smoothed(), 0.9375) {
		t.Fatalf("smoothed = %g, expected 0.9375", h.session.Smoothed())
	}

	h.session.Step(frame())
	if vx := h.player().Velocity.X(); !near(vx, 0.9375*400) {
		t.Errorf("vx = %g, expected %g", vx, 0.9375*400)
	}
}

func TestWrapThroughLoop(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	p := h.player()

	p.Position = mgl64.Vec2{-20.0001, 80}
	h.session.Step(frame())
	if x := h.player().Position.X(); x != 340 {
		t.Errorf("x = %g, expected 340", x)
	}

	p.Position = mgl64.Vec2{340.0001, 80}
	h.session.Step(frame())
	if x := h.player().Position.X(); x != -20 {
		t.Errorf("x = %g, expected -20", x)
	}
}

func TestCullingBoundaryThroughLoop(t *testing.T) {
	desc := level.Description{
		ID: "cull",
		Stars: level.Section{
			Patterns:   map[string][]level.PatternPoint{"S": {{Subtype: 0}}},
			Placements: []level.Placement{{Pattern: "S", OriginX: 20, OriginY: 80}, {Pattern: "S", OriginX: 20, OriginY: 2000}},
		},
	}
	h := newHarness(t, desc)

	// The player is still waiting, so nothing integrates and no contacts fire.
	h.player().Position = mgl64.Vec2{300, 380}
	res := h.session.Step(frame())
	if res.Culled != 0 || len(h.session.Objects()) != 2 {
		t.Fatalf("culled %d at the exact boundary, expected 0", res.Culled)
	}

	h.player().Position = mgl64.Vec2{300, 380.001}
	res = h.session.Step(frame())
	if res.Culled != 1 {
		t.Fatalf("culled %d past the boundary, expected 1", res.Culled)
	}
	objs := h.session.Objects()
	if len(objs) != 1 || objs[0].Position.Y() != 2000 {
		t.Errorf("remaining objects = %v", objs)
	}
	if _, ok := h.world.Body(1); ok {
		t.Error("culled star still in the physics world")
	}
}

func TestCullMarginFromConfig(t *testing.T) {
	desc := level.Description{
		ID: "cull-margin",
		Stars: level.Section{
			Patterns:   map[string][]level.PatternPoint{"S": {{Subtype: 0}}},
			Placements: []level.Placement{{Pattern: "S", OriginX: 20, OriginY: 80}},
		},
	}
	cfg := config.Default()
	cfg.Contact.CullMargin = 50
	h := newHarnessWith(t, desc, cfg)

	h.player().Position = mgl64.Vec2{300, 130}
	if res := h.session.Step(frame()); res.Culled != 0 {
		t.Fatalf("culled %d at the configured boundary, expected 0", res.Culled)
	}
	h.player().Position = mgl64.Vec2{300, 130.001}
	if res := h.session.Step(frame()); res.Culled != 1 {
		t.Errorf("culled %d past the configured boundary, expected 1", res.Culled)
	}
}

func TestStarPickupThroughLoop(t *testing.T) {
	desc := level.Description{
		ID: "pickup",
		Stars: level.Section{
			Patterns:   map[string][]level.PatternPoint{"S": {{Subtype: int(object.StarSpecial)}}},
			Placements: []level.Placement{{Pattern: "S", OriginX: 160, OriginY: 130}},
		},
	}
	h := newHarness(t, desc)

	var picked bool
	for i := 0; i < 30 && !picked; i++ {
		res := h.session.Step(frame(core.ActionJump))
		for _, c := range res.Contacts {
			if c.Object.Kind == object.KindStar {
				picked = true
				if vy := h.player().Velocity.Y(); vy != 400 {
					t.Errorf("vy after star = %g, expected 400", vy)
				}
			}
		}
	}
	if !picked {
		t.Fatal("player never reached the star")
	}

	st := h.session.State()
	if st.Stars != 5 || st.Score < 100 {
		t.Errorf("stars %d score %d, expected 5 stars and at least 100 points", st.Stars, st.Score)
	}
	if len(h.session.Objects()) != 0 {
		t.Error("collected star still active")
	}
	last := h.updates[len(h.updates)-1]
	if last.Stars != 5 {
		t.Errorf("HUD shows %d stars, expected 5", last.Stars)
	}
}

func TestPlatformBounceThroughLoop(t *testing.T) {
	desc := level.Description{
		ID: "bounce",
		Platforms: level.Section{
			Patterns:   map[string][]level.PatternPoint{"P": {{Subtype: int(object.PlatformBreak)}}},
			Placements: []level.Placement{{Pattern: "P", OriginX: 160, OriginY: 40}},
		},
	}
	h := newHarness(t, desc)
	h.session.Step(frame(core.ActionJump))

	var bounced bool
	for i := 0; i < 600 && !bounced; i++ {
		res := h.session.Step(frame())
		for _, c := range res.Contacts {
			if c.Object.Kind == object.KindPlatform {
				bounced = true
				if !c.Outcome.Remove {
					t.Error("break platform should be removed")
				}
				if vy := h.player().Velocity.Y(); vy != 250 {
					t.Errorf("vy after bounce = %g, expected 250", vy)
				}
			}
		}
	}
	if !bounced {
		t.Fatal("player never landed on the platform")
	}
}

func TestLevelCompletionSaves(t *testing.T) {
	h := newHarness(t, emptyLevel(150))

	var res StepResult
	for i := 0; i < 120 && !res.Ended; i++ {
		res = h.session.Step(frame(core.ActionJump))
	}
	if !res.Ended || !res.Status.Completed || !res.Status.GameOver {
		t.Fatalf("status = %+v, expected a completed run", res.Status)
	}
	if res.SaveErr != nil {
		t.Fatalf("save failed: %v", res.SaveErr)
	}

	if v, ok, _ := h.kv.Int(state.KeyHighScore); !ok || v != h.session.State().Score {
		t.Errorf("persisted highScore = %d, %v, expected %d", v, ok, h.session.State().Score)
	}

	// A finished run ignores further ticks.
	y := h.player().Position.Y()
	h.session.Step(frame())
	if h.player().Position.Y() != y {
		t.Error("player moved after the run ended")
	}
	if !h.updates[len(h.updates)-1].GameOver {
		t.Error("HUD was not told about the end of the run")
	}
}

func TestScoreOnlyFromStars(t *testing.T) {
	h := newHarness(t, emptyLevel(0))

	h.session.Step(frame(core.ActionJump))
	for i := 0; i < 30; i++ {
		h.session.Step(frame())
	}
	if h.session.MaxHeight() <= int(config.Default().Player.StartY) {
		t.Fatalf("max height %d, expected the player to climb", h.session.MaxHeight())
	}
	if st := h.session.State(); st.Score != 0 || st.Stars != 0 {
		t.Errorf("score %d stars %d without a pickup, expected 0", st.Score, st.Stars)
	}
}

func TestHeightScoringOptIn(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.HeightScoring = true
	h := newHarnessWith(t, emptyLevel(0), cfg)

	h.session.Step(frame(core.ActionJump))
	for i := 0; i < 30; i++ {
		h.session.Step(frame())
	}
	want := h.session.MaxHeight() - int(cfg.Player.StartY)
	if got := h.session.State().Score; got != want || got <= 0 {
		t.Errorf("score = %d, expected the %d units climbed", got, want)
	}
}

func TestNilGameStateStaysInMemory(t *testing.T) {
	s := New(emptyLevel(100), config.Default(), nil)
	if err := s.Reset(testRuntime()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	var res StepResult
	for i := 0; i < 60 && !res.Ended; i++ {
		res = s.Step(frame(core.ActionJump))
	}
	if !res.Ended || res.SaveErr != nil {
		t.Fatalf("result = %+v, expected a saved end of run", res)
	}
}

func TestFallingEndsRun(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	h.session.Step(frame(core.ActionJump))

	h.player().Position = mgl64.Vec2{160, -1000}
	h.player().Velocity = mgl64.Vec2{}
	res := h.session.Step(frame())
	if !res.Ended || res.Status.Completed {
		t.Errorf("status = %+v, expected a failed run", res.Status)
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	h := newHarness(t, emptyLevel(0))

	h.session.Step(frame(core.ActionPause))
	if h.session.Status().Paused {
		t.Error("pause should be ignored before the run starts")
	}

	h.session.Step(frame(core.ActionJump))
	res := h.session.Step(frame(core.ActionPause))
	if !res.Status.Paused {
		t.Fatal("expected paused")
	}
	pos := h.player().Position
	for i := 0; i < 10; i++ {
		h.session.Step(frame())
	}
	if h.player().Position != pos {
		t.Error("player moved while paused")
	}

	h.session.Step(frame(core.ActionPause))
	if h.session.Status().Paused || h.player().Position == pos {
		t.Error("unpausing should resume the simulation")
	}
}

func TestHUDOnlyOnChange(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	if len(h.updates) != 1 {
		t.Fatalf("expected one update after reset, got %d", len(h.updates))
	}
	for i := 0; i < 20; i++ {
		h.session.Step(frame())
	}
	if len(h.updates) != 1 {
		t.Errorf("idle ticks produced %d updates, expected none", len(h.updates)-1)
	}
}

func TestDeterministicRuns(t *testing.T) {
	desc := level.Description{
		ID: "det",
		Stars: level.Section{
			Patterns:   map[string][]level.PatternPoint{"S": {{Subtype: 0}, {OffsetX: 30, OffsetY: 60, Subtype: 1}}},
			Placements: []level.Placement{{Pattern: "S", OriginX: 150, OriginY: 250}, {Pattern: "S", OriginX: 100, OriginY: 600}},
		},
		Platforms: level.Section{
			Patterns:   map[string][]level.PatternPoint{"P": {{Subtype: 0}, {OffsetX: 80, OffsetY: 120, Subtype: 1}}},
			Placements: []level.Placement{{Pattern: "P", OriginX: 120, OriginY: 150}, {Pattern: "P", OriginX: 60, OriginY: 450}},
		},
	}

	run := func() (physics.Body, core.Status, []Branch) {
		h := newHarness(t, desc)
		for i := 0; i < 400; i++ {
			if i%12 == 0 {
				h.session.DeliverTilt(math.Sin(float64(i) / 30))
			}
			h.session.Step(frame(core.ActionJump))
		}
		return h.session.Player(), h.session.Status(), h.session.Branches()
	}

	p1, s1, b1 := run()
	p2, s2, b2 := run()
	if p1 != p2 || s1 != s2 {
		t.Errorf("runs diverged: %+v %+v vs %+v %+v", p1, s1, p2, s2)
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Errorf("branch %d differs", i)
		}
	}
}

func TestResetRejectsBrokenLevel(t *testing.T) {
	desc := level.Description{
		Stars: level.Section{Placements: []level.Placement{{Pattern: "missing"}}},
	}
	s := New(desc, config.Default(), nil)
	err := s.Reset(testRuntime())
	if !errors.Is(err, level.ErrUnknownPattern) {
		t.Errorf("Reset() error = %v, expected ErrUnknownPattern", err)
	}
}

func TestResetScalesLevelToWidth(t *testing.T) {
	desc := level.Description{
		Stars: level.Section{
			Patterns:   map[string][]level.PatternPoint{"S": {{Subtype: 0}}},
			Placements: []level.Placement{{Pattern: "S", OriginX: 160, OriginY: 300}},
		},
	}
	s := New(desc, config.Default(), nil)
	rt := testRuntime()
	rt.ScreenW = 80
	if err := s.Reset(rt); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 640 {
		t.Errorf("Width() = %g, expected 640", s.Width())
	}
	if got := s.Objects()[0].Position; got != (mgl64.Vec2{320, 300}) {
		t.Errorf("star at %v, expected (320, 300)", got)
	}
}

func TestRender(t *testing.T) {
	h := newHarness(t, emptyLevel(0))
	scr := core.NewScreen(40, 24)
	h.session.Render(scr)

	out := scr.String()
	for _, want := range []string{"TAP SPACE TO START", string(StarChar) + " X 0", string(PlayerChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}

	h.session.Step(frame(core.ActionJump))
	h.session.Render(scr)
	if strings.Contains(scr.String(), "TAP SPACE") {
		t.Error("start prompt should disappear after the start gesture")
	}
}
