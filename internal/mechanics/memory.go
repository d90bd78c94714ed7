package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicMemory, func() session.Simulator { return &memorySim{} })
}

// Phases of a sequence-memory round.
const (
	PhaseShowing = "showing"
	PhaseInput   = "input"
)

// memoryShowDelay is the per-element reveal delay during the showing phase.
const memoryShowDelay = 700 * time.Millisecond

// memorySim is the sequence-recall mechanic: the sequence is revealed
// element-by-element, then the player reproduces it. The first mismatch
// ends the attempt and replays the same sequence; completing it lengthens
// the sequence until the level quota is reached.
type memorySim struct {
	rng *engine.Rand
}

// MemoryData is the mechanic payload for a memory session.
type MemoryData struct {
	Phase     string        `json:"phase"`
	Palette   []string      `json:"palette"`
	Sequence  []int         `json:"sequence"` // indices into Palette
	ShowIndex int           `json:"showIndex"`
	ShowAcc   time.Duration `json:"showAcc"`
	InputPos  int           `json:"inputPos"`
	Level     int           `json:"level"`
}

func (m *memorySim) Mechanic() config.Mechanic { return config.MechanicMemory }

func (m *memorySim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	m.rng = r
	paletteSize := 4 + (cfg.Difficulty - 2) // 4..6 symbols
	symbols := Symbols(cfg.Element)
	if paletteSize > len(symbols) {
		paletteSize = len(symbols)
	}
	palette := engine.PickN(r, symbols, paletteSize)

	seq := make([]int, cfg.Difficulty)
	for i := range seq {
		seq[i] = r.Intn(len(palette))
	}
	return &MemoryData{
		Phase:    PhaseShowing,
		Palette:  palette,
		Sequence: seq,
		Level:    1,
	}, nil
}

// Tick drives the showing phase: one more element becomes visible per
// delay, and when the whole sequence has been shown the input phase opens.
func (m *memorySim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*MemoryData)
	if !ok || d.Phase != PhaseShowing {
		return session.SignalNone
	}
	d.ShowAcc += dt
	for d.ShowAcc >= memoryShowDelay {
		d.ShowAcc -= memoryShowDelay
		d.ShowIndex++
		if d.ShowIndex > len(d.Sequence) {
			d.Phase = PhaseInput
			d.ShowIndex = 0
			d.ShowAcc = 0
			d.InputPos = 0
			break
		}
	}
	return session.SignalNone
}

func (m *memorySim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*MemoryData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	// Selections during the showing phase are ignored, not penalized.
	if d.Phase != PhaseInput {
		return session.SignalNone
	}
	if in.Index < 0 || in.Index >= len(d.Palette) {
		return session.SignalNone
	}

	want := d.Sequence[d.InputPos]
	if in.Index != want {
		st.LogMove("recall", d.Palette[in.Index], session.Bool(false))
		if st.Miss() {
			return session.SignalLost
		}
		// Replay the same sequence from the top.
		d.Phase = PhaseShowing
		d.ShowIndex = 0
		d.ShowAcc = 0
		d.InputPos = 0
		return session.SignalNone
	}

	st.LogMove("recall", d.Palette[in.Index], session.Bool(true))
	d.InputPos++
	if d.InputPos < len(d.Sequence) {
		return session.SignalNone
	}

	// Level complete.
	st.AddScore(1)
	d.Level++
	if st.QuotaReached() {
		return session.SignalWon
	}
	d.Sequence = append(d.Sequence, m.rng.Intn(len(d.Palette)))
	d.Phase = PhaseShowing
	d.ShowIndex = 0
	d.ShowAcc = 0
	d.InputPos = 0
	return session.SignalNone
}

func (m *memorySim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}
