package session

import (
	"errors"
	"sync"
	"time"

	"github.com/playroot/daily-arcade-go/internal/clock"
)

// Runner hosts a session on a Clock. It owns the resource-cleanup
// obligation: every tick and timer it schedules is cancelled when the
// runner closes, so a superseded session can never be mutated by a stale
// callback. All transitions — ticks, timers, inputs — are serialized behind
// one mutex; there is never more than one state update in flight.
type Runner struct {
	mu       sync.Mutex
	session  *Session
	clock    clock.Clock
	handles  []clock.Handle
	lastTick time.Time
	closed   bool
}

// ErrClosed is returned for inputs after Close.
var ErrClosed = errors.New("runner closed")

// NewRunner wraps a session. The session must not be driven by anyone else
// once handed to a runner.
func NewRunner(s *Session, c clock.Clock) *Runner {
	return &Runner{session: s, clock: c}
}

// Session returns the hosted session.
func (r *Runner) Session() *Session { return r.session }

// Start begins the session and schedules the repeating tick.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := r.session.Start(); err != nil {
		return err
	}
	r.lastTick = r.clock.Now()
	h := r.clock.ScheduleTick(r.tick)
	r.handles = append(r.handles, h)
	return nil
}

// Input applies a player action. Inputs arriving after completion or close
// are dropped.
func (r *Runner) Input(in Input) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	err := r.session.HandleInput(in)
	if errors.Is(err, ErrCompleted) {
		return nil
	}
	if err == nil && r.session.State().Completed {
		r.cancelAllLocked()
	}
	return err
}

// After schedules fn on the session's serialized stream. fn is skipped if
// the session completes or the runner closes before the delay elapses.
func (r *Runner) After(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	h := r.clock.ScheduleAfter(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.session.State().Completed {
			return
		}
		fn()
	})
	r.handles = append(r.handles, h)
}

// tick is the repeating clock callback. deltaTime is the difference from
// the previous tick timestamp; HandleTick clamps it.
func (r *Runner) tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.session.State().Completed {
		return
	}
	dt := now.Sub(r.lastTick)
	r.lastTick = now
	if err := r.session.HandleTick(dt); err != nil {
		return
	}
	if r.session.State().Completed {
		r.cancelAllLocked()
	}
}

// Close cancels all outstanding scheduled callbacks. Idempotent.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.cancelAllLocked()
}

func (r *Runner) cancelAllLocked() {
	for _, h := range r.handles {
		r.clock.Cancel(h)
	}
	r.handles = r.handles[:0]
}
