package session

import (
	"testing"
	"time"

	"github.com/playroot/daily-arcade-go/internal/clock"
	"github.com/playroot/daily-arcade-go/internal/config"
)

func newTimedRunner(t *testing.T) (*Runner, *clock.Manual) {
	t.Helper()
	cfg := guessConfig()
	cfg.Constraint = config.ConstraintTime
	s, err := New(cfg, &stubSim{mech: config.MechanicGuess, expireSig: SignalLost})
	if err != nil {
		t.Fatal(err)
	}
	mc := clock.NewManual(time.Unix(0, 0), 16*time.Millisecond)
	return NewRunner(s, mc), mc
}

func TestRunnerDrivesCountdown(t *testing.T) {
	r, mc := newTimedRunner(t)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	st := r.Session().State()
	mc.Advance(st.TimeLimit + time.Second)
	if !st.Completed {
		t.Fatal("countdown never expired under the runner")
	}
	if st.Won {
		t.Error("expiry without quota should lose")
	}
}

func TestRunnerCloseCancelsTicks(t *testing.T) {
	r, mc := newTimedRunner(t)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	st := r.Session().State()
	mc.Advance(time.Second)
	elapsed := st.Elapsed
	if elapsed == 0 {
		t.Fatal("runner never ticked")
	}
	r.Close()
	mc.Advance(time.Minute)
	if st.Elapsed != elapsed {
		t.Errorf("closed runner kept mutating state: %v -> %v", elapsed, st.Elapsed)
	}
	if err := r.Input(Input{Type: InputSelect}); err != ErrClosed {
		t.Errorf("input after close: got %v, want ErrClosed", err)
	}
}

func TestRunnerInputsSerializedWithTicks(t *testing.T) {
	r, mc := newTimedRunner(t)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	st := r.Session().State()
	for !st.Completed && st.Score < st.MaxScore {
		mc.Advance(32 * time.Millisecond)
		if err := r.Input(Input{Type: InputSelect, Index: 0}); err != nil {
			t.Fatal(err)
		}
	}
	if !st.Completed || !st.Won {
		t.Errorf("interleaved ticks and inputs did not win: completed=%v won=%v", st.Completed, st.Won)
	}
	// Completion cancels the tick stream.
	elapsed := st.Elapsed
	mc.Advance(time.Second)
	if st.Elapsed != elapsed {
		t.Error("ticks survived completion")
	}
}

func TestRunnerAfterSkippedWhenCompleted(t *testing.T) {
	r, mc := newTimedRunner(t)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	st := r.Session().State()
	fired := false
	// Due after the countdown expires, so the session is already completed
	// when the delay elapses.
	r.After(st.TimeLimit+10*time.Second, func() { fired = true })
	mc.Advance(st.TimeLimit + 20*time.Second)
	if !st.Completed {
		t.Fatal("countdown never expired under the runner")
	}
	if fired {
		t.Error("timer fired against a completed session")
	}
}

func TestRunnerDeterministicReplay(t *testing.T) {
	run := func() (Result, int) {
		r, mc := newTimedRunner(t)
		if err := r.Start(); err != nil {
			t.Fatal(err)
		}
		st := r.Session().State()
		for i := 0; i < 4; i++ {
			mc.Advance(48 * time.Millisecond)
			r.Input(Input{Type: InputSelect, Index: 0})
		}
		mc.Advance(st.TimeLimit)
		res, ok := r.Session().Result()
		if !ok {
			t.Fatal("no result after countdown")
		}
		return res, len(st.Moves)
	}
	a, movesA := run()
	b, movesB := run()
	if a.Score != b.Score || a.Won != b.Won || a.Elapsed != b.Elapsed || movesA != movesB {
		t.Errorf("same seed and event script diverged: %+v (%d moves) vs %+v (%d moves)", a, movesA, b, movesB)
	}
}
