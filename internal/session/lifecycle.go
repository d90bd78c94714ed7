package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
)

var (
	// ErrNotStarted is returned for inputs and ticks before Start.
	ErrNotStarted = errors.New("session not started")
	// ErrCompleted is returned for inputs and ticks after the terminal
	// transition. Late scheduled callbacks treat it as a no-op.
	ErrCompleted = errors.New("session already completed")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("session already started")
)

// maxDelta caps a single tick's time advance. The first tick after a stall
// (tab in background, debugger pause) must not fast-forward the simulation.
const maxDelta = 250 * time.Millisecond

// Session drives one game instance from initialization to its terminal
// result. Methods are not safe for concurrent use; the Runner (or any other
// host) serializes all transitions.
type Session struct {
	id       uuid.UUID
	sim      Simulator
	state    *State
	result   *Result
	onResult func(Result)
}

// New creates an unstarted session for a validated config. The simulator's
// mechanic must match the config's.
func New(cfg config.GameConfig, sim Simulator) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("rejecting config: %w", err)
	}
	if sim.Mechanic() != cfg.Mechanic {
		return nil, fmt.Errorf("simulator %q cannot run mechanic %q", sim.Mechanic(), cfg.Mechanic)
	}
	return &Session{
		id:    uuid.New(),
		sim:   sim,
		state: &State{Config: cfg},
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State exposes the full state for rendering. Callers must treat it as
// read-only.
func (s *Session) State() *State { return s.state }

// OnResult registers the completion callback, invoked exactly once at the
// terminal transition.
func (s *Session) OnResult(fn func(Result)) { s.onResult = fn }

// Start performs the Uninitialized → Active transition: derives the scalar
// budgets from the config and asks the simulator to build its entities.
func (s *Session) Start() error {
	if s.state.Started {
		return ErrAlreadyStarted
	}
	cfg := s.state.Config
	maxAttempts, timeLimit, maxScore := config.Scalars(cfg)
	s.state.MaxAttempts = maxAttempts
	s.state.TimeLimit = timeLimit
	s.state.MaxScore = maxScore

	data, err := s.sim.Init(cfg, engine.NewRand(cfg.Seed))
	if err != nil {
		return fmt.Errorf("init %s: %w", cfg.Mechanic, err)
	}
	s.state.Data = data
	s.state.Started = true
	return nil
}

// HandleInput applies one decoded player action.
func (s *Session) HandleInput(in Input) error {
	if err := s.active(); err != nil {
		return err
	}
	s.resolve(s.sim.Input(s.state, in))
	return nil
}

// HandleTick advances the session by dt. The delta is clamped so a stalled
// host cannot skip the simulation past collisions or phase boundaries.
// When the countdown crosses zero the simulator decides win or loss via
// Expire, exactly once.
func (s *Session) HandleTick(dt time.Duration) error {
	if err := s.active(); err != nil {
		return err
	}
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	s.state.Elapsed += dt
	sig := s.sim.Tick(s.state, dt)
	if sig == SignalNone && s.state.TimeLimit > 0 && s.state.Elapsed >= s.state.TimeLimit {
		s.state.Elapsed = s.state.TimeLimit
		sig = s.sim.Expire(s.state)
		if sig == SignalNone {
			sig = SignalLost
		}
	}
	s.resolve(sig)
	return nil
}

// Result returns the terminal snapshot, if the session has completed.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func (s *Session) active() error {
	if !s.state.Started {
		return ErrNotStarted
	}
	if s.state.Completed {
		return ErrCompleted
	}
	return nil
}

// resolve performs the Active → Completed transition. Completed is sticky:
// there is no path back, and the result is snapshotted exactly once.
func (s *Session) resolve(sig Signal) {
	if sig == SignalNone || s.state.Completed {
		return
	}
	won := sig == SignalWon
	if f, ok := s.sim.(Finalizer); ok {
		f.Finalize(s.state, won)
	}
	s.state.Completed = true
	s.state.Won = won

	r := Result{
		SessionID:   s.id.String(),
		Seed:        s.state.Config.Seed,
		Config:      s.state.Config,
		Won:         won,
		Score:       s.state.Score,
		MaxScore:    s.state.MaxScore,
		Attempts:    s.state.Attempts,
		MaxAttempts: s.state.MaxAttempts,
		Elapsed:     s.state.Elapsed,
		Date:        time.Now().UTC(),
	}
	s.result = &r
	if s.onResult != nil {
		s.onResult(r)
	}
}
