package mechanics

import (
	"fmt"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicTrace, func() session.Simulator { return &traceSim{} })
}

// traceShowDelay is the per-cell reveal delay during the showing phase.
const traceShowDelay = 550 * time.Millisecond

// traceSim is the path-tracing mechanic: a path lights up across a grid
// cell-by-cell, then the player retraces it by selecting cells in order.
// A wrong cell ends the attempt and replays the same path; a completed
// path scores a level and a longer path is generated.
type traceSim struct {
	rng *engine.Rand
}

// TraceData is the mechanic payload for a trace session.
type TraceData struct {
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Path      []int         `json:"path"` // cell indices, orthogonally adjacent chain
	Phase     string        `json:"phase"`
	ShowIndex int           `json:"showIndex"`
	ShowAcc   time.Duration `json:"showAcc"`
	InputPos  int           `json:"inputPos"`
	Level     int           `json:"level"`
}

func (t *traceSim) Mechanic() config.Mechanic { return config.MechanicTrace }

func (t *traceSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	t.rng = r
	side := cfg.Difficulty + 2 // 4..6 per side
	length := cfg.Difficulty + 3
	path, err := t.walk(side, side, length)
	if err != nil {
		return nil, err
	}
	return &TraceData{
		Width:  side,
		Height: side,
		Path:   path,
		Phase:  PhaseShowing,
		Level:  1,
	}, nil
}

// walk generates a self-avoiding path of the requested length. Dead ends
// restart the walk; the grid is large relative to the path so a handful of
// retries always suffices.
func (t *traceSim) walk(w, h, length int) ([]int, error) {
	dirs := [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for retry := 0; retry < 100; retry++ {
		x, y := t.rng.Intn(w), t.rng.Intn(h)
		visited := map[int]bool{y*w + x: true}
		path := []int{y*w + x}
		for len(path) < length {
			shuffled := engine.Shuffle(t.rng, dirs)
			moved := false
			for _, dir := range shuffled {
				nx, ny := x+dir[0], y+dir[1]
				idx := ny*w + nx
				if nx < 0 || nx >= w || ny < 0 || ny >= h || visited[idx] {
					continue
				}
				x, y = nx, ny
				visited[idx] = true
				path = append(path, idx)
				moved = true
				break
			}
			if !moved {
				break // dead end, restart
			}
		}
		if len(path) == length {
			return path, nil
		}
	}
	return nil, fmt.Errorf("could not place a path of length %d on a %dx%d grid", length, w, h)
}

func (t *traceSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*TraceData)
	if !ok || d.Phase != PhaseShowing {
		return session.SignalNone
	}
	d.ShowAcc += dt
	for d.ShowAcc >= traceShowDelay {
		d.ShowAcc -= traceShowDelay
		d.ShowIndex++
		if d.ShowIndex > len(d.Path) {
			d.Phase = PhaseInput
			d.ShowIndex = 0
			d.ShowAcc = 0
			d.InputPos = 0
			break
		}
	}
	return session.SignalNone
}

func (t *traceSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*TraceData)
	if !ok || in.Type != session.InputSelect {
		return session.SignalNone
	}
	if d.Phase != PhaseInput {
		return session.SignalNone
	}
	if in.Index < 0 || in.Index >= d.Width*d.Height {
		return session.SignalNone
	}

	if in.Index != d.Path[d.InputPos] {
		st.LogMove("trace", fmt.Sprintf("%d", in.Index), session.Bool(false))
		if st.Miss() {
			return session.SignalLost
		}
		d.Phase = PhaseShowing
		d.ShowIndex = 0
		d.ShowAcc = 0
		d.InputPos = 0
		return session.SignalNone
	}

	st.LogMove("trace", fmt.Sprintf("%d", in.Index), session.Bool(true))
	d.InputPos++
	if d.InputPos < len(d.Path) {
		return session.SignalNone
	}

	st.AddScore(1)
	d.Level++
	if st.QuotaReached() {
		return session.SignalWon
	}
	path, err := t.walk(d.Width, d.Height, len(d.Path)+1)
	if err != nil {
		// Grid saturated; treat the run as complete rather than stall.
		return session.SignalWon
	}
	d.Path = path
	d.Phase = PhaseShowing
	d.ShowIndex = 0
	d.ShowAcc = 0
	d.InputPos = 0
	return session.SignalNone
}

func (t *traceSim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}
