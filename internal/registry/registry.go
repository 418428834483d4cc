// Package registry is the catalog of playable levels.
// Level packages register themselves in init() functions, so the CLI and the
// terminal frontend can list and load levels without hardcoded imports.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/uberjump/internal/level"
)

// Factory produces a fresh, validated level description.
type Factory func() (level.Description, error)

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	levels = make(map[string]entry)
	mu     sync.RWMutex
)

// Register adds a level factory to the catalog.
// Panics if a level with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := levels[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}
	if title == "" {
		title = id
	}
	levels[id] = entry{title: title, factory: f}
}

// List returns all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(levels))
	for id, e := range levels {
		result = append(result, LevelInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the level registered under id.
func Create(id string) (level.Description, error) {
	mu.RLock()
	e, ok := levels[id]
	mu.RUnlock()

	if !ok {
		return level.Description{}, fmt.Errorf("registry: unknown level %q", id)
	}

	desc, err := e.factory()
	if err != nil {
		return level.Description{}, fmt.Errorf("registry: level %q: %w", id, err)
	}
	if desc.ID == "" {
		desc.ID = id
	}
	if desc.Name == "" {
		desc.Name = e.title
	}
	return desc, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}

// unregister removes a level; tests use it to keep the global catalog clean.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(levels, id)
}
