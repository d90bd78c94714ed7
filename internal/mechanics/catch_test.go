package mechanics

import (
	"testing"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func catchSession(t *testing.T, difficulty int) (*session.Session, *CatchData) {
	t.Helper()
	cfg := cfgFor(config.MechanicCatch, 17, difficulty)
	s := startSession(t, cfg)
	return s, s.State().Data.(*CatchData)
}

// dropThrough places one synthetic item directly above the basket and ticks
// until it crosses the catcher row.
func dropThrough(t *testing.T, s *session.Session, d *CatchData, item CatchItem) {
	t.Helper()
	d.SpawnAcc = 0
	d.SpawnEvery = time.Hour // keep the spawner quiet during the drop
	d.Items = []CatchItem{item}
	for len(d.Items) > 0 && !s.State().Completed {
		if err := s.HandleTick(50 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCatchDifficultyScalesSpawnAndSpeed(t *testing.T) {
	_, easy := catchSession(t, 2)
	_, hard := catchSession(t, 4)
	if hard.SpawnEvery >= easy.SpawnEvery {
		t.Errorf("spawn interval did not shrink: %v vs %v", hard.SpawnEvery, easy.SpawnEvery)
	}
	if hard.FallSpeed <= easy.FallSpeed {
		t.Errorf("fall speed did not grow: %v vs %v", hard.FallSpeed, easy.FallSpeed)
	}
}

func TestCatchGoodItemScores(t *testing.T) {
	s, d := catchSession(t, 2)
	st := s.State()
	dropThrough(t, s, d, CatchItem{
		X: d.BasketX, Y: catcherY - 0.1, VY: d.FallSpeed,
		Symbol: d.GoodSymbol, Good: true,
	})
	if st.Score != 1 {
		t.Errorf("caught good item scored %d, want 1", st.Score)
	}
	if st.Attempts != 0 {
		t.Errorf("good catch cost %d attempts", st.Attempts)
	}
}

func TestCatchBadItemCostsAttempt(t *testing.T) {
	s, d := catchSession(t, 2)
	st := s.State()
	dropThrough(t, s, d, CatchItem{
		X: d.BasketX, Y: catcherY - 0.1, VY: d.FallSpeed,
		Symbol: "decoy", Good: false,
	})
	if st.Attempts != 1 {
		t.Errorf("bad catch cost %d attempts, want 1", st.Attempts)
	}
	if st.Score != 0 {
		t.Errorf("bad catch scored %d", st.Score)
	}
}

func TestCatchMissedItemFallsOff(t *testing.T) {
	s, d := catchSession(t, 2)
	st := s.State()
	// Park the basket far from the item's column.
	s.HandleInput(session.Input{Type: session.InputPointer, X: 0.05})
	dropThrough(t, s, d, CatchItem{
		X: 0.9, Y: catcherY - 0.1, VY: d.FallSpeed,
		Symbol: d.GoodSymbol, Good: true,
	})
	if st.Score != 0 || st.Attempts != 0 {
		t.Errorf("missed item changed tallies: score=%d attempts=%d", st.Score, st.Attempts)
	}
	if len(d.Items) != 0 {
		t.Error("off-field item not culled")
	}
}

func TestCatchPointerMovesBasket(t *testing.T) {
	s, d := catchSession(t, 2)
	s.HandleInput(session.Input{Type: session.InputPointer, X: 0.25})
	if d.BasketX != 0.25 {
		t.Errorf("basket at %v, want 0.25", d.BasketX)
	}
	s.HandleInput(session.Input{Type: session.InputPointer, X: 1.7})
	if d.BasketX != 1 {
		t.Errorf("basket not clamped: %v", d.BasketX)
	}
}

func TestCatchInvertedPointerMirrorsX(t *testing.T) {
	cfg := cfgFor(config.MechanicCatch, 17, 2)
	cfg.Modifier = config.ModifierInverted
	s := startSession(t, cfg)
	d := s.State().Data.(*CatchData)
	s.HandleInput(session.Input{Type: session.InputPointer, X: 0.2})
	if d.BasketX != 0.8 {
		t.Errorf("inverted basket at %v, want 0.8", d.BasketX)
	}
}

func TestCatchQuotaWinsBeforeExpiry(t *testing.T) {
	s, d := catchSession(t, 2)
	st := s.State()
	for i := 0; i < st.MaxScore; i++ {
		dropThrough(t, s, d, CatchItem{
			X: d.BasketX, Y: catcherY - 0.1, VY: d.FallSpeed,
			Symbol: d.GoodSymbol, Good: true,
		})
	}
	if !st.Completed || !st.Won {
		t.Fatalf("quota reached but completed=%v won=%v", st.Completed, st.Won)
	}
	if st.Score != st.MaxScore {
		t.Errorf("score %d != maxScore %d", st.Score, st.MaxScore)
	}
}
