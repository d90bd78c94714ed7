package mechanics

import (
	"math"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicChase, func() session.Simulator { return &chaseSim{} })
}

const (
	chaseWidth      = 9
	chaseHeight     = 7
	chaseTouchRange = 0.5 // cell units
)

// chaseSim is the maze-chase mechanic: the player steps cell-by-cell through
// a pillared grid collecting pellets while enemies oscillate across the
// field. Enemies are not pursuers; they bounce reflectively off walls and
// bounds. Contact relocates the player to the safe start cell and costs an
// attempt; losing the last attempt ends the session.
type chaseSim struct {
	rng *engine.Rand
}

// ChaseEnemy is one oscillating enemy with a continuous position in cell
// units.
type ChaseEnemy struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Symbol string  `json:"symbol"`
}

// ChaseData is the mechanic payload for a chase session.
type ChaseData struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Walls    []bool       `json:"walls"`   // row-major
	Pellets  []bool       `json:"pellets"` // row-major
	PlayerX  int          `json:"playerX"`
	PlayerY  int          `json:"playerY"`
	SafeX    int          `json:"safeX"`
	SafeY    int          `json:"safeY"`
	Enemies  []ChaseEnemy `json:"enemies"`
	Inverted bool         `json:"inverted"`
}

func (c *chaseSim) Mechanic() config.Mechanic { return config.MechanicChase }

func (c *chaseSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	c.rng = r
	w, h := chaseWidth, chaseHeight

	// Pillars at odd/odd cells leave every corridor connected.
	walls := make([]bool, w*h)
	free := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if x%2 == 1 && y%2 == 1 {
				walls[idx] = true
			} else if !(x == 0 && y == 0) {
				free = append(free, idx)
			}
		}
	}

	_, _, quota := config.Scalars(cfg)
	if quota > len(free) {
		quota = len(free)
	}
	pellets := make([]bool, w*h)
	for _, idx := range engine.PickN(r, free, quota) {
		pellets[idx] = true
	}

	speed := 1.2 + 0.4*float64(cfg.Difficulty-2) // cells per second
	symbols := Symbols(cfg.Element)
	enemies := make([]ChaseEnemy, cfg.Difficulty)
	for i := range enemies {
		e := ChaseEnemy{Symbol: engine.Pick(r, symbols)}
		// Axis-aligned oscillators, alternating horizontal and vertical.
		// Pillars sit at odd/odd cells, so an even row or even column gives
		// each oscillator an unobstructed run between the field bounds.
		// Row 0 and column 0 are excluded so no oscillator can camp the
		// safe cell at the origin.
		if i%2 == 0 {
			e.Y = float64(2 * (1 + r.Intn((h-1)/2)))
			e.X = float64(1 + r.Intn(w-2))
			e.VX = speed
		} else {
			e.X = float64(2 * (1 + r.Intn((w-1)/2)))
			e.Y = float64(1 + r.Intn(h-2))
			e.VY = speed
		}
		enemies[i] = e
	}

	return &ChaseData{
		Width:    w,
		Height:   h,
		Walls:    walls,
		Pellets:  pellets,
		Enemies:  enemies,
		Inverted: cfg.Modifier == config.ModifierInverted,
	}, nil
}

func (c *chaseSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*ChaseData)
	if !ok || in.Type != session.InputMove {
		return session.SignalNone
	}
	dx, dy := 0, 0
	switch in.Direction {
	case session.DirUp:
		dy = -1
	case session.DirDown:
		dy = 1
	case session.DirLeft:
		dx = -1
	case session.DirRight:
		dx = 1
	default:
		return session.SignalNone
	}
	if d.Inverted {
		dx = -dx
	}
	nx, ny := d.PlayerX+dx, d.PlayerY+dy
	if nx < 0 || nx >= d.Width || ny < 0 || ny >= d.Height || d.Walls[ny*d.Width+nx] {
		return session.SignalNone
	}
	d.PlayerX, d.PlayerY = nx, ny

	idx := ny*d.Width + nx
	if d.Pellets[idx] {
		d.Pellets[idx] = false
		st.AddScore(1)
		st.LogMove("pellet", "", session.Bool(true))
		if st.QuotaReached() {
			return session.SignalWon
		}
	}
	return session.SignalNone
}

func (c *chaseSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*ChaseData)
	if !ok {
		return session.SignalNone
	}
	sec := dt.Seconds()
	sig := session.SignalNone
	for i := range d.Enemies {
		e := &d.Enemies[i]
		c.moveEnemy(d, e, sec)
		if math.Abs(e.X-float64(d.PlayerX)) < chaseTouchRange &&
			math.Abs(e.Y-float64(d.PlayerY)) < chaseTouchRange {
			st.LogMove("caught", e.Symbol, session.Bool(false))
			if st.Miss() {
				sig = session.SignalLost
				break
			}
			// Relocate to the safe cell instead of losing outright.
			d.PlayerX, d.PlayerY = d.SafeX, d.SafeY
		}
	}
	return sig
}

// moveEnemy advances one oscillator, reflecting off field bounds and
// pillars: invert the moving component and clamp back inside.
func (c *chaseSim) moveEnemy(d *ChaseData, e *ChaseEnemy, sec float64) {
	nx := e.X + e.VX*sec
	ny := e.Y + e.VY*sec

	if nx < 0 || nx > float64(d.Width-1) || c.blocked(d, nx, e.Y) {
		e.VX = -e.VX
		nx = clampf(nx, 0, float64(d.Width-1))
		if c.blocked(d, nx, e.Y) {
			nx = e.X
		}
	}
	if ny < 0 || ny > float64(d.Height-1) || c.blocked(d, e.X, ny) {
		e.VY = -e.VY
		ny = clampf(ny, 0, float64(d.Height-1))
		if c.blocked(d, e.X, ny) {
			ny = e.Y
		}
	}
	e.X, e.Y = nx, ny
}

func (c *chaseSim) blocked(d *ChaseData, x, y float64) bool {
	cx := int(math.Round(x))
	cy := int(math.Round(y))
	if cx < 0 || cx >= d.Width || cy < 0 || cy >= d.Height {
		return true
	}
	return d.Walls[cy*d.Width+cx]
}

func (c *chaseSim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
