package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/uberjump/internal/config"
	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/game"
	"github.com/vovakirdan/uberjump/internal/hud"
	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/state"
	"github.com/vovakirdan/uberjump/internal/storage"
)

// ModelOptions configures a game model.
type ModelOptions struct {
	Level   level.Description
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // optional; runs and state stay in memory without it
	Player  string         // KV scope and run owner; empty means the local player
	Logger  *log.Logger
	Sink    hud.Sink
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	opts       ModelOptions
	gen        int64
	session    *game.Session
	sampler    *game.TiltSampler
	screen     *core.Screen
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	status     core.Status
	startStars int
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates a game model and expands the level for the terminal size.
func NewModel(opts ModelOptions) (Model, error) {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Game.Physics.TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultScope
	}

	var kv state.KV = state.NewMemoryKV()
	if opts.Store != nil {
		kv = opts.Store.Scope(opts.Player)
	}
	gs, err := state.Load(kv)
	if err != nil {
		return Model{}, fmt.Errorf("tui: loading game state: %w", err)
	}

	in := opts.Game.Input
	m := Model{
		opts:       opts,
		gen:        nextGeneration(),
		sampler:    game.NewTiltSampler(in.KeyStep, in.KeyDecay, in.MaxTilt),
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	m.session = game.New(opts.Level, opts.Game, gs,
		game.WithLogger(opts.Logger.With("level", opts.Level.ID)),
		game.WithSink(opts.Sink),
	)
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	if err := m.session.Reset(m.opts.Runtime); err != nil {
		return err
	}
	m.startStars = m.session.State().Stars
	m.status = m.session.Status()
	m.runSaved = false
	return nil
}

// Init starts the tick and tilt sample loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.gen, m.opts.Runtime.TickRate),
		sampleCmd(m.gen, m.opts.Game.Input.SampleMS),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case SampleMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.session.DeliverTilt(m.sampler.Sample())
		return m, sampleCmd(m.gen, m.opts.Game.Input.SampleMS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsTilt(action):
		m.sampler.Nudge(action)
	case action == core.ActionBack:
		// Leaving mid-run is only allowed while paused or after the run.
		if m.status.GameOver || m.status.Paused || !m.status.Active {
			m.backToMenu = true
			return m, tea.Quit
		}
	case action == core.ActionRestart:
		if m.status.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The level is laid out for the width it was expanded at, so only a
	// run that has not started yet is rebuilt.
	if !m.status.Active {
		if err := m.reset(); err != nil {
			m.opts.Logger.Error("re-expanding level failed", "error", err)
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.status.GameOver {
		m.opts.Runtime.Seed = time.Now().UnixNano()
		if err := m.reset(); err != nil {
			m.opts.Logger.Error("restart failed", "error", err)
		}
		m.sampler.Nudge(core.ActionLevel)
		m.inputFrame.Clear()
		return m, tickCmd(m.gen, m.opts.Runtime.TickRate)
	}

	result := m.session.Step(m.inputFrame)
	m.status = result.Status

	if m.status.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.gen, m.opts.Runtime.TickRate)
}

// saveRun records the finished run in the history.
func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	run := storage.Run{
		LevelID:   m.opts.Level.ID,
		Player:    m.opts.Player,
		Score:     m.status.Score,
		Stars:     m.status.Stars - m.startStars,
		Completed: m.status.Completed,
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Error("saving run failed", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".uberjump", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.opts.Level.ID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.session.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Status returns the last observed run status.
func (m Model) Status() core.Status {
	return m.status
}

// WantsMenu reports whether the player asked to go back to the menu.
func (m Model) WantsMenu() bool {
	return m.backToMenu
}

// Run plays a level in the local terminal until the player quits or goes back.
// It reports whether the player asked for the menu.
func Run(opts ModelOptions) (bool, error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	return ok && fm.WantsMenu(), nil
}
