// internal/game/types.go
//
// Core type definitions for the number-guessing game engine.
// Defines:
//   - Outcome: three-way result of a guess (correct/too low/too high).
//   - Game: state for a single in-progress or finished game.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome represents the evaluation result of a single guess.
// Possible values:
//   - "correct":  guess equals the secret; the game is won.
//   - "too_low":  guess is below the secret.
//   - "too_high": guess is above the secret.
//
// The string values are the wire values used in API responses.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeTooLow          = "too_low"
	OutcomeTooHigh         = "too_high"
)

// Game holds the state of a single guessing-game session.
//
// The secret never leaves this package; the guess history and active flag
// are guarded by a per-game mutex so that two concurrent guesses on the
// same game cannot interleave a history append with the active-flag flip.
type Game struct {
	ID        uuid.UUID // Unique game identifier, assigned at creation.
	CreatedAt time.Time // Informational only; not used in any game logic.

	mu      sync.Mutex
	secret  int   // The number to guess, in [MinSecret, MaxSecret].
	guesses []int // Guesses made so far, in submission order.
	active  bool  // True until a guess matches the secret; then false forever.
}
