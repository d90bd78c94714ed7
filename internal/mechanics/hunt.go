package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicHunt, func() session.Simulator { return &huntSim{} })
}

// huntSim is the hidden-object mechanic: a grid of decoys conceals the
// target symbol in several cells; find them all before attempts or the
// countdown run out. Earned score survives a loss.
type huntSim struct{}

// HuntCell is one grid cell.
type HuntCell struct {
	Symbol string `json:"symbol"`
	Target bool   `json:"target"`
	Found  bool   `json:"found"`
}

// HuntData is the mechanic payload for a hunt session.
type HuntData struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Cells        []HuntCell `json:"cells"`
	TargetSymbol string     `json:"targetSymbol"`
	Remaining    int        `json:"remaining"`
}

func (h *huntSim) Mechanic() config.Mechanic { return config.MechanicHunt }

func (h *huntSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	side := cfg.Difficulty + 2 // 4..6 per side
	total := side * side
	_, _, quota := config.Scalars(cfg)
	if quota > total/2 {
		quota = total / 2
	}

	symbols := Symbols(cfg.Element)
	target := engine.Pick(r, symbols)
	decoys := make([]string, 0, len(symbols)-1)
	for _, s := range symbols {
		if s != target {
			decoys = append(decoys, s)
		}
	}

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}
	targetCells := make(map[int]bool, quota)
	for _, idx := range engine.PickN(r, indices, quota) {
		targetCells[idx] = true
	}

	cells := make([]HuntCell, total)
	for i := range cells {
		if targetCells[i] {
			cells[i] = HuntCell{Symbol: target, Target: true}
		} else {
			cells[i] = HuntCell{Symbol: engine.Pick(r, decoys)}
		}
	}

	return &HuntData{
		Width:        side,
		Height:       side,
		Cells:        cells,
		TargetSymbol: target,
		Remaining:    quota,
	}, nil
}

func (h *huntSim) Tick(st *session.State, dt time.Duration) session.Signal {
	return session.SignalNone
}

func (h *huntSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*HuntData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	i := in.Index
	if i < 0 || i >= len(d.Cells) {
		return session.SignalNone
	}
	cell := &d.Cells[i]
	// Re-selecting a resolved cell is a no-op, not an attempt.
	if cell.Found {
		return session.SignalNone
	}
	if cell.Target {
		cell.Found = true
		d.Remaining--
		st.AddScore(1)
		st.LogMove("find", cell.Symbol, session.Bool(true))
		if d.Remaining == 0 {
			return session.SignalWon
		}
		return session.SignalNone
	}
	cell.Found = true // a probed decoy stays revealed
	st.LogMove("find", cell.Symbol, session.Bool(false))
	if st.Miss() {
		return session.SignalLost
	}
	return session.SignalNone
}

func (h *huntSim) Expire(st *session.State) session.Signal {
	if d, ok := st.Data.(*HuntData); ok && d.Remaining == 0 {
		return session.SignalWon
	}
	return session.SignalLost
}
