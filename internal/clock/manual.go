package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock driven entirely by Advance. Ticks and timers fire
// synchronously inside Advance in timestamp order, which makes session tests
// deterministic and instant.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	step   time.Duration
	nextID Handle
	ticks  map[Handle]func(now time.Time)
	timers map[Handle]*manualTimer
}

type manualTimer struct {
	at time.Time
	fn func()
}

// NewManual creates a manual clock starting at start, delivering ticks every
// step of advanced time (DefaultTickInterval when step is zero).
func NewManual(start time.Time, step time.Duration) *Manual {
	if step <= 0 {
		step = DefaultTickInterval
	}
	return &Manual{
		now:    start,
		step:   step,
		ticks:  make(map[Handle]func(now time.Time)),
		timers: make(map[Handle]*manualTimer),
	}
}

func (m *Manual) ScheduleTick(fn func(now time.Time)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.ticks[m.nextID] = fn
	return m.nextID
}

func (m *Manual) ScheduleAfter(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.timers[m.nextID] = &manualTimer{at: m.now.Add(d), fn: fn}
	return m.nextID
}

func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ticks, h)
	delete(m.timers, h)
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves simulated time forward by d, firing due timers and tick
// callbacks in order. Callbacks run without the clock lock held, so they may
// schedule or cancel freely.
func (m *Manual) Advance(d time.Duration) {
	target := m.Now().Add(d)
	for {
		m.mu.Lock()
		next := m.now.Add(m.step)
		// Earliest due timer before the next tick boundary wins.
		var dueTimer Handle
		for h, t := range m.timers {
			if !t.at.After(target) && t.at.Before(next) {
				if dueTimer == 0 || t.at.Before(m.timers[dueTimer].at) {
					dueTimer = h
				}
			}
		}
		if dueTimer != 0 {
			t := m.timers[dueTimer]
			delete(m.timers, dueTimer)
			m.now = t.at
			m.mu.Unlock()
			t.fn()
			continue
		}
		if next.After(target) {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next
		fns := make([]func(now time.Time), 0, len(m.ticks))
		handles := make([]Handle, 0, len(m.ticks))
		for h := range m.ticks {
			handles = append(handles, h)
		}
		sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
		for _, h := range handles {
			fns = append(fns, m.ticks[h])
		}
		now := m.now
		m.mu.Unlock()
		for _, fn := range fns {
			fn(now)
		}
	}
}
