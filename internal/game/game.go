// internal/game/game.go
//
// Core game engine for a single number-guessing session.
// Responsibilities:
//   - Create new games with a random secret in [1,100].
//   - Apply guesses via three-way comparison against the secret.
//   - Track the one-way state transition: active → complete (won).
//
// Notes:
//   - The secret comes from math/rand/v2's shared top-level generator,
//     which is safe for concurrent use and is never re-seeded per call.
//   - Range validation of guesses is a boundary concern; the engine
//     accepts any integer.
//   - NewWithSecret exists so tests can pin the secret.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	// MinSecret and MaxSecret bound the secret (inclusive).
	MinSecret = 1
	MaxSecret = 100
)

// ErrGameOver is returned by SubmitGuess once a game has been won.
// Well-behaved hypermedia clients never see it: the submit-guess link is
// omitted from responses for completed games, so only clients that bypass
// the links can reach this state.
var ErrGameOver = errors.New("game already complete")

// New constructs a new active game with a uniformly random secret.
func New(id uuid.UUID) *Game {
	return NewWithSecret(id, rand.Intn(MaxSecret-MinSecret+1)+MinSecret)
}

// NewWithSecret constructs a game with a fixed secret. Used by tests.
func NewWithSecret(id uuid.UUID, secret int) *Game {
	return &Game{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		secret:    secret,
		guesses:   []int{},
		active:    true,
	}
}

// SubmitGuess records a guess and reports how it compares to the secret.
//
// A correct guess flips the game to complete; the flip is permanent.
// Guesses against a completed game are rejected with ErrGameOver and leave
// the history untouched. The append and the flag flip happen under one
// lock, so concurrent guesses on the same game serialize cleanly.
func (g *Game) SubmitGuess(value int) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return "", ErrGameOver
	}
	g.guesses = append(g.guesses, value)

	out := compare(value, g.secret)
	if out == OutcomeCorrect {
		g.active = false
	}
	return out, nil
}

// LastOutcome recomputes the outcome of the most recent guess.
// The second return is false when no guesses have been made yet.
// Derived from history rather than stored, so it cannot desynchronize.
func (g *Game) LastOutcome() (Outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.guesses) == 0 {
		return "", false
	}
	return compare(g.guesses[len(g.guesses)-1], g.secret), true
}

// IsActive reports whether the game still accepts guesses.
func (g *Game) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// NumGuesses returns how many guesses have been submitted.
func (g *Game) NumGuesses() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.guesses)
}

// Guesses returns a copy of the guess history in submission order.
func (g *Game) Guesses() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, len(g.guesses))
	copy(out, g.guesses)
	return out
}

// compare is the three-way comparison at the heart of the game.
func compare(value, secret int) Outcome {
	switch {
	case value == secret:
		return OutcomeCorrect
	case value < secret:
		return OutcomeTooLow
	default:
		return OutcomeTooHigh
	}
}
