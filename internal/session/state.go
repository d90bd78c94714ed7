// Package session owns the generic lifecycle every mechanic shares: the
// mutable per-session state record, the simulator contract, the
// Uninitialized → Active → Completed state machine, and a clock-driven
// runner that serializes ticks, timers, and inputs into one update stream.
package session

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
)

// Move is one append-only log entry per discrete player action. Entries are
// never mutated after append; ordering is the causal order of input.
type Move struct {
	Type    string        `json:"type"`
	Value   string        `json:"value"`
	At      time.Duration `json:"at"`
	Correct *bool         `json:"correct,omitempty"`
}

// State is the mutable per-session record. It is created once at session
// start, mutated only through lifecycle and simulator transitions, and
// discarded when a new session starts. Data is an opaque payload owned
// exclusively by the active simulator.
type State struct {
	Config      config.GameConfig `json:"config"`
	Started     bool              `json:"started"`
	Completed   bool              `json:"completed"`
	Won         bool              `json:"won"`
	Score       int               `json:"score"`
	MaxScore    int               `json:"maxScore"`
	Attempts    int               `json:"attempts"`
	MaxAttempts int               `json:"maxAttempts"`
	Elapsed     time.Duration     `json:"timeElapsed"`
	TimeLimit   time.Duration     `json:"timeLimit,omitempty"` // 0 = no countdown
	Moves       []Move            `json:"moves"`
	Data        any               `json:"data,omitempty"`
}

// Remaining returns the countdown left, or zero when the session has no
// time limit.
func (s *State) Remaining() time.Duration {
	if s.TimeLimit == 0 {
		return 0
	}
	if s.Elapsed >= s.TimeLimit {
		return 0
	}
	return s.TimeLimit - s.Elapsed
}

// LogMove appends one entry to the move log, stamped with session-elapsed
// time.
func (s *State) LogMove(typ, value string, correct *bool) {
	s.Moves = append(s.Moves, Move{Type: typ, Value: value, At: s.Elapsed, Correct: correct})
}

// AddScore raises the score, saturating at MaxScore where a quota applies.
func (s *State) AddScore(n int) {
	s.Score += n
	if s.MaxScore > 0 && s.Score > s.MaxScore {
		s.Score = s.MaxScore
	}
}

// Miss records one incorrect discrete action and reports whether the
// attempt budget is now exhausted.
func (s *State) Miss() bool {
	if s.Attempts < s.MaxAttempts {
		s.Attempts++
	}
	return s.Attempts >= s.MaxAttempts
}

// QuotaReached reports whether the score quota has been met.
func (s *State) QuotaReached() bool {
	return s.MaxScore > 0 && s.Score >= s.MaxScore
}

// Result is the immutable snapshot taken exactly once at the terminal
// transition.
type Result struct {
	SessionID   string            `json:"sessionId"`
	Seed        int32             `json:"seed"`
	Config      config.GameConfig `json:"config"`
	Won         bool              `json:"won"`
	Score       int               `json:"score"`
	MaxScore    int               `json:"maxScore"`
	Attempts    int               `json:"attempts"`
	MaxAttempts int               `json:"maxAttempts"`
	Elapsed     time.Duration     `json:"timeElapsed"`
	Date        time.Time         `json:"date"`
}

// Bool is a convenience for building Move.Correct values.
func Bool(v bool) *bool { return &v }
