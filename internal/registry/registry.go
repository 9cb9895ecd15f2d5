// Package registry holds the game variants the platform can run.
// Variants register a factory from init(), so the CLI and the TUI list
// and create games without importing them directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/drake-arcade/internal/core"
)

// Game is the interface every game variant implements.
// Games hold pure simulation logic; the platform owns input mapping,
// timing and terminal output.
type Game interface {
	// ID returns a unique identifier such as "drake" or "drake_ai".
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after the game ends.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and game over / pause flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Summary string
	Order   int
}

// Factory creates a new instance of a game.
type Factory func() Game

// Option customizes a registration.
type Option func(*GameInfo)

// WithSummary attaches a one-line description shown in menus.
func WithSummary(s string) Option {
	return func(info *GameInfo) { info.Summary = s }
}

// WithOrder sets the listing position. Lower values come first; ties are
// broken by ID.
func WithOrder(n int) Option {
	return func(info *GameInfo) { info.Order = n }
}

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory. It panics if the ID is already taken.
func Register(id string, f Factory, opts ...Option) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	info := GameInfo{ID: id, Title: f().Title()}
	for _, opt := range opts {
		opt(&info)
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns all registered games in listing order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the description of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
