package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicMatch, func() session.Simulator { return &matchSim{} })
}

// matchSettleDelay is how long two face-up cards stay visible before the
// comparison resolves. The resolution rides the serialized tick stream so
// it can never race a third selection.
const matchSettleDelay = 600 * time.Millisecond

// matchSim is the pair-matching mechanic. At most one unresolved pair is
// pending at any time; a third selection while two cards are face-up is
// rejected.
type matchSim struct{}

// MatchCard is one card in the dealt deck.
type MatchCard struct {
	Symbol  string `json:"symbol"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

// MatchData is the mechanic payload for a match session.
type MatchData struct {
	Cards        []MatchCard   `json:"cards"`
	FirstPick    int           `json:"firstPick"`  // -1 when nothing is face-up
	SecondPick   int           `json:"secondPick"` // -1 unless a pair is pending
	SettleLeft   time.Duration `json:"settleLeft"`
	MatchedPairs int           `json:"matchedPairs"`
	TotalPairs   int           `json:"totalPairs"`
}

func (m *matchSim) Mechanic() config.Mechanic { return config.MechanicMatch }

func (m *matchSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	pairs := cfg.Difficulty * 2 // 4, 6, or 8 pairs
	symbols := engine.PickN(r, Symbols(cfg.Element), pairs)

	deck := make([]string, 0, pairs*2)
	for _, s := range symbols {
		deck = append(deck, s, s)
	}
	deck = engine.Shuffle(r, deck)

	cards := make([]MatchCard, len(deck))
	for i, s := range deck {
		cards[i] = MatchCard{Symbol: s}
	}
	return &MatchData{Cards: cards, FirstPick: -1, SecondPick: -1, TotalPairs: pairs}, nil
}

func (m *matchSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*MatchData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	i := in.Index
	if i < 0 || i >= len(d.Cards) {
		return session.SignalNone
	}
	// While a pair is pending resolution, further picks are rejected.
	if d.SecondPick >= 0 {
		return session.SignalNone
	}
	card := &d.Cards[i]
	if card.Matched || card.FaceUp {
		return session.SignalNone
	}

	card.FaceUp = true
	if d.FirstPick < 0 {
		d.FirstPick = i
		return session.SignalNone
	}
	d.SecondPick = i
	d.SettleLeft = matchSettleDelay
	return session.SignalNone
}

// Tick resolves a pending pair once the settle delay has elapsed.
func (m *matchSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*MatchData)
	if !ok || d.SecondPick < 0 {
		return session.SignalNone
	}
	d.SettleLeft -= dt
	if d.SettleLeft > 0 {
		return session.SignalNone
	}

	a, b := &d.Cards[d.FirstPick], &d.Cards[d.SecondPick]
	hit := a.Symbol == b.Symbol
	st.LogMove("pair", a.Symbol+"/"+b.Symbol, session.Bool(hit))
	if hit {
		a.Matched, b.Matched = true, true
		d.MatchedPairs++
		st.AddScore(1)
	} else {
		a.FaceUp, b.FaceUp = false, false
	}
	d.FirstPick, d.SecondPick = -1, -1
	d.SettleLeft = 0

	if hit && d.MatchedPairs == d.TotalPairs {
		return session.SignalWon
	}
	if !hit && st.Miss() {
		return session.SignalLost
	}
	return session.SignalNone
}

func (m *matchSim) Expire(st *session.State) session.Signal {
	if d, ok := st.Data.(*MatchData); ok && d.MatchedPairs == d.TotalPairs {
		return session.SignalWon
	}
	return session.SignalLost
}
