package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicCatch, func() session.Simulator { return &catchSim{} })
}

// Field coordinates are normalized to [0,1] on both axes; y grows downward.
const (
	catcherY       = 0.90
	catchHalfWidth = 0.08
	catchItemR     = 0.03
	catchGoodOdds  = 0.7
)

// catchSim is the falling-item mechanic: items spawn at the top on a timer,
// fall at constant speed, and are caught when they overlap the basket at the
// catcher row. Catching the wrong kind costs an attempt. Collision is
// per-tick overlap; a fast item on a slow tick can tunnel past a narrow
// basket, which is accepted.
type catchSim struct {
	rng *engine.Rand
}

// CatchItem is one falling item.
type CatchItem struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VY     float64 `json:"vy"`
	Symbol string  `json:"symbol"`
	Good   bool    `json:"good"`
}

// CatchData is the mechanic payload for a catch session.
type CatchData struct {
	BasketX    float64       `json:"basketX"`
	Items      []CatchItem   `json:"items"`
	SpawnAcc   time.Duration `json:"spawnAcc"`
	SpawnEvery time.Duration `json:"spawnEvery"`
	FallSpeed  float64       `json:"fallSpeed"`
	GoodSymbol string        `json:"goodSymbol"`
	Inverted   bool          `json:"inverted"`
}

func (c *catchSim) Mechanic() config.Mechanic { return config.MechanicCatch }

func (c *catchSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	c.rng = r
	symbols := Symbols(cfg.Element)
	return &CatchData{
		BasketX:    0.5,
		SpawnEvery: 900*time.Millisecond - 150*time.Millisecond*time.Duration(cfg.Difficulty-2),
		FallSpeed:  0.25 + 0.10*float64(cfg.Difficulty-2),
		GoodSymbol: engine.Pick(r, symbols),
		Inverted:   cfg.Modifier == config.ModifierInverted,
	}, nil
}

func (c *catchSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*CatchData)
	if !ok || in.Type != session.InputPointer {
		return session.SignalNone
	}
	x := in.X
	if d.Inverted {
		x = 1 - x
	}
	d.BasketX = clamp01(x)
	return session.SignalNone
}

func (c *catchSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*CatchData)
	if !ok {
		return session.SignalNone
	}

	d.SpawnAcc += dt
	for d.SpawnAcc >= d.SpawnEvery {
		d.SpawnAcc -= d.SpawnEvery
		c.spawn(st.Config, d)
	}

	sec := dt.Seconds()
	kept := d.Items[:0]
	sig := session.SignalNone
	for _, it := range d.Items {
		it.Y += it.VY * sec
		if it.Y >= catcherY && it.Y-it.VY*sec < catcherY {
			// Item crossed the catcher row this tick.
			if abs(it.X-d.BasketX) <= catchHalfWidth+catchItemR {
				if it.Good {
					st.AddScore(1)
					st.LogMove("catch", it.Symbol, session.Bool(true))
					if st.QuotaReached() {
						sig = session.SignalWon
					}
				} else {
					st.LogMove("catch", it.Symbol, session.Bool(false))
					if st.Miss() {
						sig = session.SignalLost
					}
				}
				continue // consumed
			}
		}
		if it.Y > 1+catchItemR {
			continue // fell off the field
		}
		kept = append(kept, it)
	}
	d.Items = kept
	return sig
}

func (c *catchSim) spawn(cfg config.GameConfig, d *CatchData) {
	good := c.rng.Next() < catchGoodOdds
	symbol := d.GoodSymbol
	if !good {
		for {
			symbol = engine.Pick(c.rng, Symbols(cfg.Element))
			if symbol != d.GoodSymbol {
				break
			}
		}
	}
	d.Items = append(d.Items, CatchItem{
		X:      c.rng.Range(0.05, 0.95),
		Y:      -catchItemR,
		VY:     d.FallSpeed,
		Symbol: symbol,
		Good:   good,
	})
}

func (c *catchSim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
