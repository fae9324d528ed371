// Package registry maps game ids to factories. Games register themselves
// from init(), so the platform and CLI create them without importing game
// internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is what the platform drives: a pure simulation stepped at a fixed
// rate and drawn into a screen buffer.
type Game interface {
	// ID returns the registry id (e.g. "blockfall").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new session. Called once before the first tick.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick with this tick's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory. It panics on a duplicate id, which can only be a
// programming error in an init() function.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id, title := range titles {
		result = append(result, GameInfo{ID: id, Title: title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Exists reports whether a game is registered under id.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}
