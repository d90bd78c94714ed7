package session

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
)

// Signal is a simulator-reported terminal condition.
type Signal int

const (
	SignalNone Signal = iota
	SignalWon
	SignalLost
)

// Simulator is the contract every mechanic implements. A simulator owns the
// opaque State.Data payload and nothing else; score, attempts, and the move
// log are mutated through the State helpers so the shared policy stays in
// one place.
type Simulator interface {
	// Mechanic identifies which config.Mechanic this simulator serves.
	Mechanic() config.Mechanic

	// Init builds the mechanic-local entities for a fresh session. The
	// random stream is seeded from the session seed and must be the only
	// source of randomness.
	Init(cfg config.GameConfig, r *engine.Rand) (any, error)

	// Tick advances continuous or phased mechanics by dt. Purely discrete
	// mechanics implement it as a no-op returning SignalNone.
	Tick(st *State, dt time.Duration) Signal

	// Input applies one decoded player action. Invalid inputs are no-ops.
	Input(st *State, in Input) Signal

	// Expire decides the outcome when the countdown reaches zero: won if
	// the mechanic's quota was met, lost otherwise.
	Expire(st *State) Signal
}

// Finalizer is implemented by mechanics whose score is a function of final
// state (efficiency scoring, zero-on-loss). Finalize runs exactly once,
// inside the terminal transition, before the result snapshot is taken.
type Finalizer interface {
	Finalize(st *State, won bool)
}
