package mechanics

import (
	"testing"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func dodgeSession(t *testing.T, difficulty int) (*session.Session, *DodgeData) {
	t.Helper()
	cfg := cfgFor(config.MechanicDodge, 29, difficulty)
	s := startSession(t, cfg)
	return s, s.State().Data.(*DodgeData)
}

// runObstacle drops one synthetic obstacle through the player row and ticks
// until it leaves the field.
func runObstacle(t *testing.T, s *session.Session, d *DodgeData, lane int) {
	t.Helper()
	d.SpawnAcc = 0
	d.SpawnEvery = time.Hour
	d.Obstacles = []DodgeObstacle{{Lane: lane, Y: dodgePlayerY - 0.1, VY: d.FallSpeed, Symbol: "x"}}
	for len(d.Obstacles) > 0 && !s.State().Completed {
		if err := s.HandleTick(20 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDodgeLaneCount(t *testing.T) {
	for _, tc := range []struct{ difficulty, lanes int }{{2, 3}, {3, 4}, {4, 5}} {
		_, d := dodgeSession(t, tc.difficulty)
		if d.Lanes != tc.lanes {
			t.Errorf("difficulty %d: %d lanes, want %d", tc.difficulty, d.Lanes, tc.lanes)
		}
		if d.PlayerLane != tc.lanes/2 {
			t.Errorf("difficulty %d: player starts in lane %d", tc.difficulty, d.PlayerLane)
		}
	}
}

func TestDodgeMoveClampsAtEdges(t *testing.T) {
	s, d := dodgeSession(t, 2)
	for i := 0; i < d.Lanes+2; i++ {
		s.HandleInput(session.Input{Type: session.InputMove, Direction: session.DirLeft})
	}
	if d.PlayerLane != 0 {
		t.Errorf("player walked off the left edge: lane %d", d.PlayerLane)
	}
	for i := 0; i < d.Lanes+2; i++ {
		s.HandleInput(session.Input{Type: session.InputMove, Direction: session.DirRight})
	}
	if d.PlayerLane != d.Lanes-1 {
		t.Errorf("player walked off the right edge: lane %d", d.PlayerLane)
	}
}

func TestDodgeInvertedMoveFlips(t *testing.T) {
	cfg := cfgFor(config.MechanicDodge, 29, 2)
	cfg.Modifier = config.ModifierInverted
	s := startSession(t, cfg)
	d := s.State().Data.(*DodgeData)
	start := d.PlayerLane
	s.HandleInput(session.Input{Type: session.InputMove, Direction: session.DirLeft})
	if d.PlayerLane != start+1 {
		t.Errorf("inverted left moved to lane %d, want %d", d.PlayerLane, start+1)
	}
}

func TestDodgeCollisionCostsAttemptOnce(t *testing.T) {
	s, d := dodgeSession(t, 2)
	st := s.State()
	runObstacle(t, s, d, d.PlayerLane)
	if st.Attempts != 1 {
		t.Errorf("collision cost %d attempts, want exactly 1", st.Attempts)
	}
	if st.Score != 0 {
		t.Errorf("hit obstacle still scored: %d", st.Score)
	}
}

func TestDodgePassedObstacleScores(t *testing.T) {
	s, d := dodgeSession(t, 2)
	st := s.State()
	other := (d.PlayerLane + 1) % d.Lanes
	runObstacle(t, s, d, other)
	if st.Score != 1 {
		t.Errorf("dodged obstacle scored %d, want 1", st.Score)
	}
	if st.Attempts != 0 {
		t.Errorf("dodged obstacle cost %d attempts", st.Attempts)
	}
}

func TestDodgeSurvivingCountdownWins(t *testing.T) {
	s, d := dodgeSession(t, 2)
	st := s.State()
	d.SpawnEvery = time.Hour // nothing to dodge; just outlive the clock
	for !st.Completed {
		if err := s.HandleTick(200 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	if !st.Won {
		t.Error("surviving the countdown did not win")
	}
}

func TestDodgeAttemptExhaustionLoses(t *testing.T) {
	s, d := dodgeSession(t, 2)
	st := s.State()
	for !st.Completed {
		runObstacle(t, s, d, d.PlayerLane)
	}
	if st.Won {
		t.Error("exhausting attempts won")
	}
	if st.Attempts != st.MaxAttempts {
		t.Errorf("attempts %d != budget %d", st.Attempts, st.MaxAttempts)
	}
}
