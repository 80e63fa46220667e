// internal/store/memory.go
//
// In-memory implementation of the game Registry.
// This is the only persistence layer the service has: all game state lives
// in process memory and is lost on restart, which is intentional for a
// teaching artifact.
//
// Characteristics:
//   - Stores *game.Game objects keyed by UUID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Best score is an atomic compare-and-swap loop, never read-then-write.
//   - ErrNotFound is returned for missing game IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lucproglangcourse/numguess-go/internal/game"
)

// ErrNotFound is returned when a game ID has no entry in the registry.
var ErrNotFound = errors.New("game not found")

// Registry defines the storage interface for game sessions and the global
// best score. Constructed and injected explicitly — no package-level state —
// so it can be swapped or faked in tests.
type Registry interface {
	// Create allocates a fresh ID, constructs an active game, and stores it.
	Create(ctx context.Context) *game.Game

	// Get retrieves a game by ID. Repeated lookups of the same ID return
	// the same underlying *game.Game, so mutations through one reference
	// are visible through all of them.
	// Returns ErrNotFound if the game does not exist.
	Get(ctx context.Context, id uuid.UUID) (*game.Game, error)

	// Delete removes a game. Deleting an absent ID is a silent no-op.
	Delete(ctx context.Context, id uuid.UUID)

	// Count returns the current number of stored games.
	Count(ctx context.Context) int

	// RecordScore offers the guess count of a just-won game as a best-score
	// candidate. It returns true only when the score strictly beats the
	// stored best (or no game has been won yet); ties are not records.
	RecordScore(score int) bool

	// BestScore returns the fewest guesses ever used to win a game during
	// this process's lifetime. ok is false until the first win is recorded.
	BestScore() (score int, ok bool)
}

// memory is an in-memory map-based Registry implementation.
type memory struct {
	mu    sync.RWMutex              // guards games map
	games map[uuid.UUID]*game.Game  // keyed by Game.ID
	best  atomic.Int64              // fewest guesses to win; 0 = no win yet
}

// NewMemoryRegistry constructs a new in-memory Registry.
func NewMemoryRegistry() Registry {
	return &memory{games: make(map[uuid.UUID]*game.Game)}
}

// Create inserts a new active game under a fresh UUID.
// uuid.New draws from crypto/rand, so concurrent creates cannot collide.
func (m *memory) Create(ctx context.Context) *game.Game {
	g := game.New(uuid.New())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return g
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// Delete removes the entry if present. Idempotent.
func (m *memory) Delete(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

// Count returns the number of games currently stored.
func (m *memory) Count(ctx context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// RecordScore runs a compare-and-swap loop: re-read the current best,
// check the candidate against it, attempt an atomic replace, retry on
// contention. Concurrent winners serialize correctly and the stored value
// is always the minimum ever submitted.
//
// Zero doubles as the "unset" value internally; legitimate scores are ≥ 1.
func (m *memory) RecordScore(score int) bool {
	if score < 1 {
		return false
	}
	for {
		cur := m.best.Load()
		if cur != 0 && int64(score) >= cur {
			return false
		}
		if m.best.CompareAndSwap(cur, int64(score)) {
			return true
		}
	}
}

// BestScore reports the stored best, or ok=false before the first win.
func (m *memory) BestScore() (int, bool) {
	v := m.best.Load()
	return int(v), v != 0
}
