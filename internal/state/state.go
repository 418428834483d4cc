// Package state holds the score, star and high-score counters of one player
// and their load/save lifecycle against a key-value store.
package state

import (
	"fmt"
	"sync"
)

// Keys persisted in the store.
const (
	KeyHighScore = "highScore"
	KeyStars     = "stars"
)

// KV is the persistent key-value store GameState saves into.
type KV interface {
	// Int returns the value stored under key and whether it exists.
	Int(key string) (int, bool, error)
	SetInt(key string, v int) error
}

// StarAward is how much a star pickup is worth.
type StarAward struct {
	Stars int
	Score int
}

// GameState is owned by the session that plays with it; it is not safe for
// concurrent mutation.
type GameState struct {
	Score     int
	Stars     int
	HighScore int

	kv KV
}

// Load reads the persisted high score and star count. Absent keys read as 0.
func Load(kv KV) (*GameState, error) {
	gs := &GameState{kv: kv}
	if kv == nil {
		return gs, nil
	}

	var err error
	if gs.HighScore, err = readInt(kv, KeyHighScore); err != nil {
		return nil, err
	}
	if gs.Stars, err = readInt(kv, KeyStars); err != nil {
		return nil, err
	}
	return gs, nil
}

func readInt(kv KV, key string) (int, error) {
	v, ok, err := kv.Int(key)
	if err != nil {
		return 0, fmt.Errorf("state: reading %s: %w", key, err)
	}
	if !ok || v < 0 {
		return 0, nil
	}
	return v, nil
}

// Save folds the score into the high score and persists highScore and stars.
// Score itself is never written.
func (g *GameState) Save() error {
	g.HighScore = max(g.Score, g.HighScore)
	if g.kv == nil {
		return nil
	}
	if err := g.kv.SetInt(KeyHighScore, g.HighScore); err != nil {
		return fmt.Errorf("state: saving %s: %w", KeyHighScore, err)
	}
	if err := g.kv.SetInt(KeyStars, g.Stars); err != nil {
		return fmt.Errorf("state: saving %s: %w", KeyStars, err)
	}
	return nil
}

// AddStar applies a star pickup.
func (g *GameState) AddStar(a StarAward) {
	if a.Stars > 0 {
		g.Stars += a.Stars
	}
	g.AddScore(a.Score)
}

// AddScore adds n points. Negative deltas are ignored.
func (g *GameState) AddScore(n int) {
	if n > 0 {
		g.Score += n
	}
}

// Reset starts a new run. Stars and the high score carry over.
func (g *GameState) Reset() {
	g.Score = 0
}

// MemoryKV is an in-memory KV. The zero value is ready to use.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]int)}
}

func (m *MemoryKV) Int(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) SetInt(key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]int)
	}
	m.values[key] = v
	return nil
}

var _ KV = (*MemoryKV)(nil)
