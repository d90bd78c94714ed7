package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicReaction, func() session.Simulator { return &reactionSim{} })
}

const reactionDecoyOdds = 0.25

// reactionSim is the multi-target reaction mechanic: targets pop up at
// random positions and vanish after a short lifetime. Tapping a live target
// scores; tapping a decoy costs an attempt; a target that times out simply
// disappears.
type reactionSim struct {
	rng *engine.Rand
}

// ReactionTarget is one live target on the field.
type ReactionTarget struct {
	ID     int           `json:"id"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Symbol string        `json:"symbol"`
	Decoy  bool          `json:"decoy"`
	TTL    time.Duration `json:"ttl"`
}

// ReactionData is the mechanic payload for a reaction session.
type ReactionData struct {
	Targets    []ReactionTarget `json:"targets"`
	NextID     int              `json:"nextId"`
	SpawnAcc   time.Duration    `json:"spawnAcc"`
	SpawnEvery time.Duration    `json:"spawnEvery"`
	Lifetime   time.Duration    `json:"lifetime"`
	TapSymbol  string           `json:"tapSymbol"`
}

func (s *reactionSim) Mechanic() config.Mechanic { return config.MechanicReaction }

func (s *reactionSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	s.rng = r
	return &ReactionData{
		Targets:    []ReactionTarget{},
		NextID:     1,
		SpawnEvery: 800*time.Millisecond - 100*time.Millisecond*time.Duration(cfg.Difficulty-2),
		Lifetime:   1500*time.Millisecond - 250*time.Millisecond*time.Duration(cfg.Difficulty-2),
		TapSymbol:  engine.Pick(r, Symbols(cfg.Element)),
	}, nil
}

func (s *reactionSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*ReactionData)
	if !ok {
		return session.SignalNone
	}

	d.SpawnAcc += dt
	for d.SpawnAcc >= d.SpawnEvery {
		d.SpawnAcc -= d.SpawnEvery
		decoy := s.rng.Next() < reactionDecoyOdds
		symbol := d.TapSymbol
		if decoy {
			for {
				symbol = engine.Pick(s.rng, Symbols(st.Config.Element))
				if symbol != d.TapSymbol {
					break
				}
			}
		}
		d.Targets = append(d.Targets, ReactionTarget{
			ID:     d.NextID,
			X:      s.rng.Range(0.05, 0.95),
			Y:      s.rng.Range(0.05, 0.95),
			Symbol: symbol,
			Decoy:  decoy,
			TTL:    d.Lifetime,
		})
		d.NextID++
	}

	kept := d.Targets[:0]
	for _, t := range d.Targets {
		t.TTL -= dt
		if t.TTL <= 0 {
			continue // expired, no penalty
		}
		kept = append(kept, t)
	}
	d.Targets = kept
	return session.SignalNone
}

func (s *reactionSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*ReactionData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	for i, t := range d.Targets {
		if t.ID != in.Index {
			continue
		}
		d.Targets = append(d.Targets[:i], d.Targets[i+1:]...)
		if t.Decoy {
			st.LogMove("tap", t.Symbol, session.Bool(false))
			if st.Miss() {
				return session.SignalLost
			}
			return session.SignalNone
		}
		st.AddScore(1)
		st.LogMove("tap", t.Symbol, session.Bool(true))
		if st.QuotaReached() {
			return session.SignalWon
		}
		return session.SignalNone
	}
	// Tapping empty space or a vanished target is a no-op.
	return session.SignalNone
}

func (s *reactionSim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}
