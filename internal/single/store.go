// internal/single/store.go
//
// In-memory store for single-player games.
// Finished games are deleted; there is no durability and none is wanted;
// a restart forfeits in-flight games.
//
// Characteristics:
//   - Stores *Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing game IDs on Get().

package single

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a game id has no live game.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for single-player games.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*Game, error)

	// Delete removes a game (finished games are cleaned up eagerly).
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*Game)}
}

func (m *memory) Save(ctx context.Context, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
