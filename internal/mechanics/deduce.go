package mechanics

import (
	"fmt"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicDeduce, func() session.Simulator { return &deduceSim{} })
}

// deduceSim is the logical-deduction mechanic: a secret hides among the
// candidates, elimination clues are revealed strictly in a precomputed
// order, one per request, and the score shrinks with every clue consumed.
// Score is computed at completion and zeroed on loss.
type deduceSim struct{}

// DeduceData is the mechanic payload for a deduce session.
type DeduceData struct {
	Candidates []string `json:"candidates"`
	Secret     string   `json:"secret"`
	Clues      []string `json:"clues"`
	Revealed   int      `json:"revealed"`
}

func (d *deduceSim) Mechanic() config.Mechanic { return config.MechanicDeduce }

func (d *deduceSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	n := cfg.Difficulty + 4 // 6..8 candidates
	symbols := Symbols(cfg.Element)
	if n > len(symbols) {
		return nil, fmt.Errorf("element %q has only %d symbols, need %d", cfg.Element, len(symbols), n)
	}
	candidates := engine.PickN(r, symbols, n)
	secret := engine.Pick(r, candidates)

	// One elimination clue per non-secret candidate, in a shuffled but
	// fixed order. Revealing all of them leaves only the secret.
	others := make([]string, 0, n-1)
	for _, c := range candidates {
		if c != secret {
			others = append(others, c)
		}
	}
	others = engine.Shuffle(r, others)
	clues := make([]string, len(others))
	for i, c := range others {
		clues[i] = "it is not " + c
	}

	return &DeduceData{Candidates: candidates, Secret: secret, Clues: clues}, nil
}

func (d *deduceSim) Tick(st *session.State, dt time.Duration) session.Signal {
	return session.SignalNone
}

func (d *deduceSim) Input(st *session.State, in session.Input) session.Signal {
	data, ok := st.Data.(*DeduceData)
	if !ok {
		return session.SignalNone
	}
	switch in.Type {
	case session.InputReveal:
		// Clues come out in their precomputed order, never out of turn.
		if data.Revealed < len(data.Clues) {
			data.Revealed++
			st.LogMove("clue", data.Clues[data.Revealed-1], nil)
		}
		return session.SignalNone

	case session.InputSelect:
		if in.Index < 0 || in.Index >= len(data.Candidates) {
			return session.SignalNone
		}
		pick := data.Candidates[in.Index]
		hit := pick == data.Secret
		st.LogMove("accuse", pick, session.Bool(hit))
		if hit {
			return session.SignalWon
		}
		if st.Miss() {
			return session.SignalLost
		}
		return session.SignalNone
	}
	return session.SignalNone
}

func (d *deduceSim) Expire(st *session.State) session.Signal {
	return session.SignalLost
}

// Finalize scores inversely to clues revealed: a blind correct accusation
// earns full marks, a fully assisted one earns the floor. Losses score zero.
func (d *deduceSim) Finalize(st *session.State, won bool) {
	if !won {
		st.Score = 0
		return
	}
	data, ok := st.Data.(*DeduceData)
	if !ok {
		return
	}
	total := len(data.Clues)
	if total == 0 {
		st.Score = st.MaxScore
		return
	}
	score := st.MaxScore * (total - data.Revealed) / total
	if score < 1 {
		score = 1
	}
	st.Score = score
}
