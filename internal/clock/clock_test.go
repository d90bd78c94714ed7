package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualTicksFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0), 10*time.Millisecond)
	var ticks int
	m.ScheduleTick(func(now time.Time) { ticks++ })
	m.Advance(100 * time.Millisecond)
	if ticks != 10 {
		t.Errorf("got %d ticks, want 10", ticks)
	}
}

func TestManualTimerOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0), 10*time.Millisecond)
	var order []string
	m.ScheduleAfter(25*time.Millisecond, func() { order = append(order, "timer") })
	m.ScheduleTick(func(now time.Time) {
		if len(order) == 0 || order[len(order)-1] != "tick" {
			order = append(order, "tick")
		}
	})
	m.Advance(30 * time.Millisecond)
	// Ticks at 10ms and 20ms precede the 25ms timer.
	if len(order) < 2 || order[0] != "tick" || order[1] != "timer" {
		t.Errorf("unexpected firing order %v", order)
	}
}

func TestManualCancelPreventsFiring(t *testing.T) {
	m := NewManual(time.Unix(0, 0), 10*time.Millisecond)
	fired := false
	h := m.ScheduleAfter(20*time.Millisecond, func() { fired = true })
	m.Cancel(h)
	m.Advance(50 * time.Millisecond)
	if fired {
		t.Error("cancelled timer fired")
	}

	ticks := 0
	th := m.ScheduleTick(func(now time.Time) { ticks++ })
	m.Advance(30 * time.Millisecond)
	m.Cancel(th)
	m.Advance(30 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("tick fired %d times, want 3 (none after cancel)", ticks)
	}
}

func TestManualNowAdvances(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewManual(start, 0)
	m.Advance(time.Second)
	if got := m.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(time.Second))
	}
}

func TestSystemScheduleAfter(t *testing.T) {
	s := NewSystem(time.Millisecond)
	var fired atomic.Bool
	done := make(chan struct{})
	s.ScheduleAfter(time.Millisecond, func() {
		fired.Store(true)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	if !fired.Load() {
		t.Error("callback did not run")
	}
}

func TestSystemCancelTick(t *testing.T) {
	s := NewSystem(time.Millisecond)
	var count atomic.Int64
	h := s.ScheduleTick(func(now time.Time) { count.Add(1) })
	time.Sleep(20 * time.Millisecond)
	s.Cancel(h)
	settled := count.Load()
	time.Sleep(20 * time.Millisecond)
	if count.Load() > settled+1 {
		t.Errorf("ticks continued after cancel: %d -> %d", settled, count.Load())
	}
}
