package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/uberjump/internal/config"
	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/registry"
	"github.com/vovakirdan/uberjump/internal/storage"
)

const testLevelID = "tui-test"

// testLevel ends just above the start height so a launch completes it
// within a few ticks.
func testLevel() level.Description {
	return level.Description{
		ID:   testLevelID,
		Name: "TUI Test",
		EndY: 100,
		Stars: level.Section{
			Patterns: map[string][]level.PatternPoint{
				"one": {{OffsetX: 0, OffsetY: 0, Subtype: 0}},
			},
			Placements: []level.Placement{{Pattern: "one", OriginX: 40, OriginY: 600}},
		},
	}
}

func init() {
	registry.Register(testLevelID, "TUI Test", func() (level.Description, error) {
		return testLevel(), nil
	})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(ModelOptions{
		Level:   testLevel(),
		Game:    config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7},
		Store:   store,
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Gen: m.gen})
}

func TestModelCompletesAndSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, store)

	m = update(t, m, runeKey('w'))
	for i := 0; i < 60 && !m.Status().GameOver; i++ {
		m = tick(t, m)
	}
	if !m.Status().GameOver || !m.Status().Completed {
		t.Fatalf("status = %+v, expected a completed run", m.Status())
	}

	// Further ticks must not record the run again.
	m = tick(t, m)
	_ = tick(t, m)

	runs, err := store.TopRuns(testLevelID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if !runs[0].Completed || runs[0].Player != storage.DefaultScope {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{Gen: m.gen + 1})
	if m.Status().Active {
		t.Error("a tick from another model must not step this run")
	}

	m = tick(t, m)
	if !m.Status().Active {
		t.Error("own tick should start the run")
	}
}

func TestModelTiltReachesSession(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, SampleMsg{Gen: m.gen})
	if got := m.session.Smoothed(); got <= 0 {
		t.Errorf("smoothed tilt = %g, expected a right tilt", got)
	}
}

func TestModelBackOnlyWhenIdle(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, runeKey('w'))
	m = tick(t, m)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.WantsMenu() {
		t.Fatal("back must be ignored mid-run")
	}

	m = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.Status().Paused {
		t.Fatalf("status = %+v, expected paused", m.Status())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsMenu() {
		t.Error("back should leave a paused run")
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, runeKey('w'))
	for i := 0; i < 60 && !m.Status().GameOver; i++ {
		m = tick(t, m)
	}
	if !m.Status().GameOver {
		t.Fatal("run did not end")
	}

	m = update(t, m, runeKey('r'))
	m = tick(t, m)
	if m.Status().GameOver || m.Status().Active {
		t.Errorf("status after restart = %+v, expected a waiting run", m.Status())
	}
	if m.runSaved {
		t.Error("restart should rearm run saving")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "TAP SPACE TO START") {
		t.Error("waiting view should show the start prompt")
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{LevelID: testLevelID, Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)
	var found bool
	for _, it := range m.Items() {
		if it.LevelID == testLevelID {
			found = true
			if it.Best != 42 {
				t.Errorf("best = %d, expected 42", it.Best)
			}
		}
	}
	if !found {
		t.Fatalf("menu items %+v missing %s", m.Items(), testLevelID)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	res := m.Result()
	if res.LevelID == "" || res.Quit {
		t.Errorf("result = %+v, expected a selected level", res)
	}
}

func TestMenuLogsBestScoreErrors(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	var buf bytes.Buffer
	m := NewMenuModel(store, core.DefaultConfig(), log.New(&buf))
	if len(m.Items()) == 0 {
		t.Fatal("expected menu items")
	}
	if !strings.Contains(buf.String(), "loading best score failed") {
		t.Errorf("log = %q, expected the database error", buf.String())
	}
}

func TestMenuScoreboardRequest(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if res := next.(MenuModel).Result(); !res.WantsScoreboard {
		t.Errorf("result = %+v, expected scoreboard", res)
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := openTestStore(t)
	sm := NewSessionModel(SessionOptions{
		Store:   store,
		Game:    config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1},
		Player:  "alice",
	})

	send := func(msg tea.Msg) {
		t.Helper()
		next, _ := sm.Update(msg)
		sm = next.(SessionModel)
	}

	send(tea.KeyMsg{Type: tea.KeyEnter})
	if sm.screen != screenGame {
		t.Fatalf("screen = %v, expected game", sm.screen)
	}

	send(tea.KeyMsg{Type: tea.KeyEsc})
	if sm.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after back", sm.screen)
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if sm.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", sm.screen)
	}
	send(runeKey('b'))
	if sm.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after leaving scores", sm.screen)
	}
}
