package mechanics

import (
	"testing"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func traceSession(t *testing.T, difficulty int) (*session.Session, *TraceData) {
	t.Helper()
	cfg := cfgFor(config.MechanicTrace, 61, difficulty)
	s := startSession(t, cfg)
	return s, s.State().Data.(*TraceData)
}

func traceShowOut(t *testing.T, s *session.Session, d *TraceData) {
	t.Helper()
	for d.Phase == PhaseShowing && !s.State().Completed {
		if err := s.HandleTick(100 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
}

func adjacent(w int, a, b int) bool {
	ax, ay := a%w, a/w
	bx, by := b%w, b/w
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

func TestTracePathIsSelfAvoidingChain(t *testing.T) {
	for _, difficulty := range []int{2, 3, 4} {
		_, d := traceSession(t, difficulty)
		if d.Width != difficulty+2 || d.Height != difficulty+2 {
			t.Errorf("difficulty %d grid is %dx%d", difficulty, d.Width, d.Height)
		}
		if len(d.Path) != difficulty+3 {
			t.Errorf("difficulty %d path length %d, want %d", difficulty, len(d.Path), difficulty+3)
		}
		seen := make(map[int]bool)
		for i, idx := range d.Path {
			if idx < 0 || idx >= d.Width*d.Height {
				t.Fatalf("path cell %d outside the grid", idx)
			}
			if seen[idx] {
				t.Fatalf("path revisits cell %d", idx)
			}
			seen[idx] = true
			if i > 0 && !adjacent(d.Width, d.Path[i-1], idx) {
				t.Fatalf("path jumps from %d to %d", d.Path[i-1], idx)
			}
		}
	}
}

func TestTraceCorrectRetraceLevelsUp(t *testing.T) {
	s, d := traceSession(t, 2)
	st := s.State()
	traceShowOut(t, s, d)
	initial := len(d.Path)
	for _, idx := range append([]int(nil), d.Path...) {
		s.HandleInput(session.Input{Type: session.InputSelect, Index: idx})
	}
	if st.Score != 1 {
		t.Errorf("completed trace scored %d, want 1", st.Score)
	}
	if d.Level != 2 {
		t.Errorf("level %d after one completion, want 2", d.Level)
	}
	if len(d.Path) != initial+1 {
		t.Errorf("next path length %d, want %d", len(d.Path), initial+1)
	}
}

func TestTraceWrongCellReplaysSamePath(t *testing.T) {
	s, d := traceSession(t, 2)
	st := s.State()
	traceShowOut(t, s, d)
	before := append([]int(nil), d.Path...)
	wrong := 0
	if d.Path[0] == 0 {
		wrong = 1
	}
	s.HandleInput(session.Input{Type: session.InputSelect, Index: wrong})
	if st.Attempts != 1 {
		t.Fatalf("wrong cell cost %d attempts, want 1", st.Attempts)
	}
	if d.Phase != PhaseShowing || d.InputPos != 0 {
		t.Error("wrong cell did not restart the showing phase")
	}
	for i, idx := range d.Path {
		if idx != before[i] {
			t.Fatal("replayed path differs from the failed one")
		}
	}
}

func TestTraceShowingPhaseIgnoresInput(t *testing.T) {
	s, d := traceSession(t, 2)
	st := s.State()
	s.HandleInput(session.Input{Type: session.InputSelect, Index: d.Path[0]})
	if st.Attempts != 0 || d.InputPos != 0 {
		t.Error("selection during the showing phase was not ignored")
	}
}

func TestTraceQuotaWins(t *testing.T) {
	s, d := traceSession(t, 2)
	st := s.State()
	for !st.Completed {
		traceShowOut(t, s, d)
		for _, idx := range append([]int(nil), d.Path...) {
			if st.Completed {
				break
			}
			s.HandleInput(session.Input{Type: session.InputSelect, Index: idx})
		}
	}
	if !st.Won {
		t.Error("clearing every level did not win")
	}
}

func TestTraceLossOnExhaustedAttempts(t *testing.T) {
	s, d := traceSession(t, 2)
	st := s.State()
	for !st.Completed {
		traceShowOut(t, s, d)
		wrong := 0
		if d.Path[0] == 0 {
			wrong = 1
		}
		s.HandleInput(session.Input{Type: session.InputSelect, Index: wrong})
	}
	if st.Won {
		t.Error("failing every retrace won")
	}
	if st.Attempts != st.MaxAttempts {
		t.Errorf("attempts %d != budget %d", st.Attempts, st.MaxAttempts)
	}
}
