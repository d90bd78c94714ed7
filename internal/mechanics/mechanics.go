// Package mechanics implements the twelve mini-game simulators and the
// dispatch table that selects one per config.Mechanic. Each simulator owns
// its session's opaque data payload; everything they share (score, attempts,
// the move log, completion) flows through the session package.
package mechanics

import (
	"fmt"
	"sort"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

// registry maps each mechanic tag to its simulator constructor. Closed set:
// registration happens in init functions, one per simulator file.
var registry = make(map[config.Mechanic]func() session.Simulator)

func register(m config.Mechanic, ctor func() session.Simulator) {
	if _, dup := registry[m]; dup {
		panic(fmt.Sprintf("mechanics: duplicate registration for %q", m))
	}
	registry[m] = ctor
}

// New returns a fresh simulator for the mechanic.
func New(m config.Mechanic) (session.Simulator, error) {
	ctor, ok := registry[m]
	if !ok {
		return nil, fmt.Errorf("no simulator registered for mechanic %q", m)
	}
	return ctor(), nil
}

// NewSession builds an unstarted session for a config, dispatching to the
// matching simulator.
func NewSession(cfg config.GameConfig) (*session.Session, error) {
	sim, err := New(cfg.Mechanic)
	if err != nil {
		return nil, err
	}
	return session.New(cfg, sim)
}

// List returns the registered mechanics in stable order.
func List() []config.Mechanic {
	out := make([]config.Mechanic, 0, len(registry))
	for m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
