// Package clock abstracts the two scheduling sources that drive a session:
// a repeating tick with monotonically increasing timestamps and one-shot
// cancellable timers. Simulators never touch a platform timer directly,
// which keeps the whole engine runnable on simulated time in tests.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback so it can be cancelled.
type Handle uint64

// Clock schedules callbacks. Implementations must deliver callbacks one at
// a time per Clock; callers layer their own serialization across clocks.
type Clock interface {
	// ScheduleTick invokes fn repeatedly with the current time until
	// cancelled.
	ScheduleTick(fn func(now time.Time)) Handle
	// ScheduleAfter invokes fn once after d unless cancelled first.
	ScheduleAfter(d time.Duration, fn func()) Handle
	// Cancel stops a scheduled callback. Cancelling an unknown or already
	// fired handle is a no-op.
	Cancel(h Handle)
	// Now returns the current time.
	Now() time.Time
}

// DefaultTickInterval approximates a 60Hz repaint.
const DefaultTickInterval = 16 * time.Millisecond

// System is a Clock backed by time.Ticker and time.AfterFunc.
type System struct {
	mu       sync.Mutex
	interval time.Duration
	nextID   Handle
	cancels  map[Handle]func()
}

// NewSystem creates a real-time clock ticking at interval (or
// DefaultTickInterval when interval is zero).
func NewSystem(interval time.Duration) *System {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &System{interval: interval, cancels: make(map[Handle]func())}
}

func (s *System) register(cancel func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	h := s.nextID
	s.cancels[h] = cancel
	return h
}

// ScheduleTick starts a goroutine pumping fn at the clock's interval.
func (s *System) ScheduleTick(fn func(now time.Time)) Handle {
	ticker := time.NewTicker(s.interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return s.register(func() { once.Do(func() { close(done) }) })
}

// ScheduleAfter fires fn once after d.
func (s *System) ScheduleAfter(d time.Duration, fn func()) Handle {
	t := time.AfterFunc(d, fn)
	return s.register(func() { t.Stop() })
}

// Cancel stops the callback behind h.
func (s *System) Cancel(h Handle) {
	s.mu.Lock()
	cancel := s.cancels[h]
	delete(s.cancels, h)
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Now returns wall-clock time with a monotonic reading.
func (s *System) Now() time.Time { return time.Now() }
