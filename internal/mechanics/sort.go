package mechanics

import (
	"fmt"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicSort, func() session.Simulator { return &sortSim{} })
}

// sortSwapPenalty is the score cost of every swap beyond the minimum needed.
const sortSwapPenalty = 2

// sortSim is the ordering mechanic: the player swaps two selected positions
// per move until the sequence matches the canonical order. Each swap spends
// one attempt; score is efficiency-based, computed once at completion, and
// zeroed on loss.
type sortSim struct{}

// SortData is the mechanic payload for a sort session.
type SortData struct {
	Items    []string `json:"items"`
	Target   []string `json:"target"`
	Selected int      `json:"selected"` // -1 when no position is selected
	Swaps    int      `json:"swaps"`
	MinSwaps int      `json:"minSwaps"`
}

func (s *sortSim) Mechanic() config.Mechanic { return config.MechanicSort }

func (s *sortSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	n := cfg.Difficulty + 3 // 5..7 items
	symbols := Symbols(cfg.Element)
	if n > len(symbols) {
		return nil, fmt.Errorf("element %q has only %d symbols, need %d", cfg.Element, len(symbols), n)
	}
	picked := engine.PickN(r, symbols, n)

	rank := canonicalRank(cfg.Element)
	target := make([]string, n)
	copy(target, picked)
	// Insertion sort by canonical rank; n is tiny.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && rank[target[j]] < rank[target[j-1]]; j-- {
			target[j], target[j-1] = target[j-1], target[j]
		}
	}

	// A shuffle that happens to be sorted already is re-drawn; the starting
	// state must never equal the target (len > 1 always holds here).
	items := engine.Shuffle(r, target)
	for sequenceEqual(items, target) {
		items = engine.Shuffle(r, target)
	}

	return &SortData{
		Items:    items,
		Target:   target,
		Selected: -1,
		MinSwaps: minSwaps(items, target),
	}, nil
}

func (s *sortSim) Tick(st *session.State, dt time.Duration) session.Signal {
	return session.SignalNone
}

func (s *sortSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*SortData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	i := in.Index
	if i < 0 || i >= len(d.Items) {
		return session.SignalNone
	}
	if d.Selected < 0 {
		d.Selected = i
		return session.SignalNone
	}
	if d.Selected == i {
		d.Selected = -1
		return session.SignalNone
	}

	a, b := d.Selected, i
	d.Items[a], d.Items[b] = d.Items[b], d.Items[a]
	d.Selected = -1
	d.Swaps++
	sorted := sequenceEqual(d.Items, d.Target)
	st.LogMove("swap", fmt.Sprintf("%d<->%d", a, b), session.Bool(sorted))

	// The sorting check wins even on the final budgeted swap.
	if sorted {
		return session.SignalWon
	}
	if st.Miss() {
		return session.SignalLost
	}
	return session.SignalNone
}

func (s *sortSim) Expire(st *session.State) session.Signal {
	if d, ok := st.Data.(*SortData); ok && sequenceEqual(d.Items, d.Target) {
		return session.SignalWon
	}
	return session.SignalLost
}

// Finalize computes the efficiency score: full marks for a minimal solve,
// a penalty per wasted swap, nothing on a loss.
func (s *sortSim) Finalize(st *session.State, won bool) {
	if !won {
		st.Score = 0
		return
	}
	d, ok := st.Data.(*SortData)
	if !ok {
		return
	}
	score := st.MaxScore - sortSwapPenalty*(d.Swaps-d.MinSwaps)
	if score < 1 {
		score = 1
	}
	st.Score = score
}

// sequenceEqual is a full index-sequence identity check, not a per-element
// containment test.
func sequenceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// minSwaps counts the minimum transpositions to turn items into target via
// cycle decomposition. Symbols are distinct, so positions map uniquely.
func minSwaps(items, target []string) int {
	pos := make(map[string]int, len(target))
	for i, s := range target {
		pos[s] = i
	}
	visited := make([]bool, len(items))
	swaps := 0
	for i := range items {
		if visited[i] || pos[items[i]] == i {
			continue
		}
		size := 0
		for j := i; !visited[j]; j = pos[items[j]] {
			visited[j] = true
			size++
		}
		swaps += size - 1
	}
	return swaps
}
