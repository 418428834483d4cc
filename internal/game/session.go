// Package game is the per-tick loop of a jump run: it starts the player,
// advances physics, routes contacts, steers and wraps the player, scrolls
// the camera, culls unreachable objects and decides when the run ends.
package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/uberjump/internal/collision"
	"github.com/vovakirdan/uberjump/internal/config"
	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/hud"
	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/object"
	"github.com/vovakirdan/uberjump/internal/physics"
	"github.com/vovakirdan/uberjump/internal/state"
)

// PlayerID is the body ID of the player. Level objects start at 1.
const PlayerID physics.BodyID = 0

// World units per terminal cell. A 40-column terminal is exactly the
// 320-unit reference width.
const (
	UnitsPerCol = 8.0
	UnitsPerRow = 16.0
)

// StepResult reports what one tick did.
type StepResult struct {
	Status   core.Status
	Contacts []collision.Result // contacts that had an effect
	Culled   int
	Ended    bool  // the run ended on this tick
	SaveErr  error // set when saving the game state at the end failed
}

// EngineFactory builds the physics backend for a run.
type EngineFactory func(gravity mgl64.Vec2) physics.Engine

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSink sets the HUD sink.
func WithSink(sink hud.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithEngine replaces the built-in physics world.
func WithEngine(f EngineFactory) Option {
	return func(s *Session) {
		if f != nil {
			s.newEngine = f
		}
	}
}

// Session plays one level. It is driven from a single goroutine.
type Session struct {
	desc   level.Description
	cfg    config.GameConfig
	state  *state.GameState
	logger *log.Logger
	sink   hud.Sink

	newEngine EngineFactory
	engine    physics.Engine
	objects   *object.Set
	router    *collision.Router
	camera    Camera
	scenery   scenery

	rt       core.RuntimeConfig
	width    float64
	scale    float64
	offsets  Offsets
	smoothed float64
	maxY     int
	ticks    int

	active    bool
	paused    bool
	gameOver  bool
	completed bool

	lastHUD *hud.State
}

// New creates a session for a level. Call Reset before the first Step.
func New(desc level.Description, cfg config.GameConfig, gs *state.GameState, opts ...Option) *Session {
	if gs == nil {
		gs = &state.GameState{}
	}
	s := &Session{
		desc:   desc,
		cfg:    cfg,
		state:  gs,
		logger: log.New(io.Discard),
		sink:   hud.Discard,
		newEngine: func(gravity mgl64.Vec2) physics.Engine {
			return physics.NewWorld(gravity)
		},
		camera: NewCamera(cfg.Camera),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset starts a new run: the level is expanded for the screen width, the
// player waits on the start gesture and the score is zeroed.
// A level that fails to expand leaves the session unusable.
func (s *Session) Reset(rt core.RuntimeConfig) error {
	s.rt = rt
	s.width = float64(rt.ScreenW) * UnitsPerCol
	s.scale = level.ScaleFor(s.width)

	objs, err := level.Expand(s.desc, s.scale)
	if err != nil {
		s.logger.Error("level expansion failed", "level", s.desc.ID, "error", err)
		return err
	}

	s.engine = s.newEngine(mgl64.Vec2{0, s.cfg.Physics.Gravity})
	s.objects = object.NewSet(PlayerID + 1)
	s.state.Reset()
	s.router = collision.NewRouter(s.engine, s.objects, s.state, PlayerID, s.tuning(), s.policy())

	s.engine.Add(&physics.Body{
		ID:          PlayerID,
		Position:    mgl64.Vec2{s.width / 2, s.cfg.Player.StartY},
		Shape:       physics.Circle(s.cfg.Player.Radius),
		Mass:        s.cfg.Player.Mass,
		Category:    physics.CategoryPlayer,
		ContactTest: physics.CategoryStar | physics.CategoryPlatform,
	})
	for _, o := range objs {
		s.Spawn(o)
	}

	s.scenery = newScenery(rt.Seed, s.width, s.scale, s.cfg.Run.Branches, s.cfg.Run.BranchSpacing)
	s.offsets = Offsets{}
	s.smoothed = 0
	s.maxY = int(s.cfg.Player.StartY)
	s.ticks = 0
	s.active = false
	s.paused = false
	s.gameOver = false
	s.completed = false
	s.lastHUD = nil

	stars, platforms := s.desc.Counts()
	s.logger.Info("level loaded", "level", s.desc.ID, "stars", stars, "platforms", platforms, "width", s.width, "scale", s.scale)
	s.notify()
	return nil
}

func (s *Session) tuning() object.Tuning {
	return object.Tuning{
		StarBoost:      s.cfg.Contact.StarBoost,
		PlatformBounce: s.cfg.Contact.PlatformBounce,
	}
}

func (s *Session) policy() collision.Policy {
	return collision.Policy{
		Normal:  state.StarAward{Stars: s.cfg.Scoring.NormalStars, Score: s.cfg.Scoring.NormalScore},
		Special: state.StarAward{Stars: s.cfg.Scoring.SpecialStars, Score: s.cfg.Scoring.SpecialScore},
	}
}

// Spawn adds an object to the running level and returns it with its ID.
func (s *Session) Spawn(o object.Object) object.Object {
	o = s.objects.Add(o)
	b := &physics.Body{
		ID:       o.ID,
		Position: o.Position,
		Category: o.Category(),
	}
	switch o.Kind {
	case object.KindStar:
		b.Shape = physics.Circle(s.cfg.Physics.StarRadius)
	default:
		b.Shape = physics.Rect(s.cfg.Physics.PlatformWidth, s.cfg.Physics.PlatformHeight)
	}
	s.engine.Add(b)
	return o
}

// DeliverTilt feeds one raw tilt sample. It only updates the smoothed input,
// which the next Step consumes.
func (s *Session) DeliverTilt(raw float64) {
	s.smoothed = SmoothWeighted(raw, s.smoothed, s.cfg.Input.Smoothing)
}

// Step advances the run by one tick.
func (s *Session) Step(in core.InputFrame) StepResult {
	var res StepResult
	if s.gameOver {
		res.Status = s.Status()
		return res
	}

	if in.Has(core.ActionJump) {
		s.start()
	}

	if in.Has(core.ActionPause) && s.active {
		s.paused = !s.paused
		s.logger.Debug("pause toggled", "paused", s.paused)
	}
	if s.paused {
		res.Status = s.Status()
		return res
	}
	s.ticks++

	s.engine.Integrate(s.rt.Dt())
	for _, c := range s.engine.DetectContacts() {
		r := s.router.Route(c)
		if r.Outcome.None() {
			continue
		}
		s.logger.Debug("contact", "object", r.Object.String(), "remove", r.Outcome.Remove, "stars", r.Award.Stars, "score", r.Award.Score)
		res.Contacts = append(res.Contacts, r)
	}
	s.router.Forget()

	player := s.player()

	// Steer, then wrap around the horizontal edges.
	if s.active {
		player.Velocity = mgl64.Vec2{s.smoothed * s.cfg.Player.TiltSpeed, player.Velocity.Y()}
	}
	player.Position = mgl64.Vec2{
		Wrap(player.Position.X(), s.width, s.cfg.Player.WrapMargin),
		player.Position.Y(),
	}

	y := player.Position.Y()
	s.offsets = s.camera.Offsets(y)
	res.Culled = s.cull(y)

	if s.active {
		if h := int(y); h > s.maxY {
			if s.cfg.Scoring.HeightScoring {
				s.state.AddScore(h - s.maxY)
			}
			s.maxY = h
		}

		switch {
		case s.desc.EndY > 0 && y > float64(s.desc.EndY):
			s.completed = true
			res.Ended, res.SaveErr = true, s.end("level completed")
		case y < float64(s.maxY)-s.cfg.Run.FallLimit:
			res.Ended, res.SaveErr = true, s.end("fell")
		}
	}

	s.notify()
	res.Status = s.Status()
	return res
}

// start performs the one-way transition from waiting to playing.
func (s *Session) start() {
	if s.active {
		return
	}
	s.active = true
	s.player().Dynamic = true
	s.engine.ApplyImpulse(PlayerID, mgl64.Vec2{0, s.cfg.Player.LaunchImpulse})
	s.logger.Info("run started", "level", s.desc.ID)
}

// cull removes every object the player can no longer reach.
func (s *Session) cull(playerY float64) int {
	n := 0
	margin := s.cfg.Contact.CullMargin
	s.objects.Each(func(o object.Object) {
		if object.ShouldCull(playerY, o.Position.Y(), margin) && s.router.Remove(o.ID) {
			n++
		}
	})
	s.router.Forget()
	return n
}

func (s *Session) end(reason string) error {
	s.gameOver = true
	s.player().Dynamic = false
	err := s.state.Save()
	if err != nil {
		s.logger.Error("saving game state failed", "error", err)
	}
	s.logger.Info("game over", "level", s.desc.ID, "reason", reason, "score", s.state.Score, "high", s.state.HighScore, "stars", s.state.Stars, "ticks", s.ticks)
	return err
}

func (s *Session) notify() {
	cur := s.HUD()
	if s.lastHUD != nil && *s.lastHUD == cur {
		return
	}
	s.lastHUD = &cur
	s.sink.Update(cur)
}

func (s *Session) player() *physics.Body {
	b, ok := s.engine.Body(PlayerID)
	if !ok {
		panic(&collision.InvariantViolation{Reason: "player body missing from engine"})
	}
	return b
}

// HUD returns the current HUD snapshot.
func (s *Session) HUD() hud.State {
	return hud.State{
		Level:     s.desc.ID,
		Score:     s.state.Score,
		Stars:     s.state.Stars,
		HighScore: max(s.state.HighScore, s.state.Score),
		GameOver:  s.gameOver,
		Completed: s.completed,
	}
}

// Status returns the externally visible state of the run.
func (s *Session) Status() core.Status {
	return core.Status{
		Score:     s.state.Score,
		Stars:     s.state.Stars,
		Active:    s.active,
		GameOver:  s.gameOver,
		Completed: s.completed,
		Paused:    s.paused,
	}
}

// Player returns a copy of the player body.
func (s *Session) Player() physics.Body {
	return *s.player()
}

// Objects returns the active objects in insertion order.
func (s *Session) Objects() []object.Object {
	return s.objects.Objects()
}

// Offsets returns the current parallax offsets.
func (s *Session) Offsets() Offsets {
	return s.offsets
}

// Branches returns the midground branches of this run.
func (s *Session) Branches() []Branch {
	return s.scenery.branches
}

// Smoothed returns the smoothed tilt the next tick will steer with.
func (s *Session) Smoothed() float64 {
	return s.smoothed
}

// Width returns the world width in units.
func (s *Session) Width() float64 {
	return s.width
}

// MaxHeight returns the best height reached this run.
func (s *Session) MaxHeight() int {
	return s.maxY
}

// Level returns the level being played.
func (s *Session) Level() level.Description {
	return s.desc
}

// State returns the game state the session mutates.
func (s *Session) State() *state.GameState {
	return s.state
}
