package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicDodge, func() session.Simulator { return &dodgeSim{} })
}

const (
	dodgePlayerY = 0.90
	dodgeHitBand = 0.04 // half-height of the collision band at the player row
)

// dodgeSim is the lane-avoidance mechanic: obstacles fall down discrete
// lanes and the player sidesteps them. Surviving the countdown wins; each
// collision costs an attempt; every obstacle that passes scores a point.
type dodgeSim struct {
	rng *engine.Rand
}

// DodgeObstacle is one falling obstacle.
type DodgeObstacle struct {
	Lane   int     `json:"lane"`
	Y      float64 `json:"y"`
	VY     float64 `json:"vy"`
	Symbol string  `json:"symbol"`
	hit    bool
}

// DodgeData is the mechanic payload for a dodge session.
type DodgeData struct {
	Lanes      int             `json:"lanes"`
	PlayerLane int             `json:"playerLane"`
	Obstacles  []DodgeObstacle `json:"obstacles"`
	SpawnAcc   time.Duration   `json:"spawnAcc"`
	SpawnEvery time.Duration   `json:"spawnEvery"`
	FallSpeed  float64         `json:"fallSpeed"`
	Inverted   bool            `json:"inverted"`
}

func (s *dodgeSim) Mechanic() config.Mechanic { return config.MechanicDodge }

func (s *dodgeSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	s.rng = r
	lanes := cfg.Difficulty + 1 // 3..5 lanes
	return &DodgeData{
		Lanes:      lanes,
		PlayerLane: lanes / 2,
		SpawnEvery: 800*time.Millisecond - 120*time.Millisecond*time.Duration(cfg.Difficulty-2),
		FallSpeed:  0.35 + 0.12*float64(cfg.Difficulty-2),
		Inverted:   cfg.Modifier == config.ModifierInverted,
	}, nil
}

func (s *dodgeSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*DodgeData)
	if !ok || in.Type != session.InputMove {
		return session.SignalNone
	}
	step := 0
	switch in.Direction {
	case session.DirLeft:
		step = -1
	case session.DirRight:
		step = 1
	default:
		return session.SignalNone
	}
	if d.Inverted {
		step = -step
	}
	lane := d.PlayerLane + step
	if lane >= 0 && lane < d.Lanes {
		d.PlayerLane = lane
	}
	return session.SignalNone
}

func (s *dodgeSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*DodgeData)
	if !ok {
		return session.SignalNone
	}

	d.SpawnAcc += dt
	for d.SpawnAcc >= d.SpawnEvery {
		d.SpawnAcc -= d.SpawnEvery
		d.Obstacles = append(d.Obstacles, DodgeObstacle{
			Lane:   s.rng.Intn(d.Lanes),
			Y:      -0.05,
			VY:     d.FallSpeed,
			Symbol: engine.Pick(s.rng, Symbols(st.Config.Element)),
		})
	}

	sec := dt.Seconds()
	kept := d.Obstacles[:0]
	sig := session.SignalNone
	for _, ob := range d.Obstacles {
		ob.Y += ob.VY * sec
		if !ob.hit && ob.Lane == d.PlayerLane && abs(ob.Y-dodgePlayerY) <= dodgeHitBand {
			ob.hit = true
			st.LogMove("collide", ob.Symbol, session.Bool(false))
			if st.Miss() {
				sig = session.SignalLost
			}
		}
		if ob.Y > 1.05 {
			if !ob.hit {
				st.AddScore(1)
				if st.QuotaReached() && sig == session.SignalNone {
					sig = session.SignalWon
				}
			}
			continue
		}
		kept = append(kept, ob)
	}
	d.Obstacles = kept
	return sig
}

// Expire ends the survival window. Getting here means attempts were never
// exhausted, so the session is won regardless of quota.
func (s *dodgeSim) Expire(st *session.State) session.Signal {
	return session.SignalWon
}
