package mechanics

import (
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicBounce, func() session.Simulator { return &bounceSim{} })
}

const (
	bouncePaddleY    = 0.92
	bouncePaddleHalf = 0.10
	bounceBallR      = 0.02
	bounceBrickCols  = 6
	bounceSpinFactor = 2.0 // horizontal speed added per unit of paddle offset
)

// bounceSim is the paddle/ball mechanic. Wall and paddle bounces invert the
// relevant velocity component and clamp the ball inside bounds; bricks pop
// on overlap and score a point. Dropping the ball costs an attempt and
// resets it to the serve position.
type bounceSim struct {
	rng *engine.Rand
}

// BounceBrick is one destructible brick.
type BounceBrick struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Alive  bool    `json:"alive"`
	Symbol string  `json:"symbol"`
}

// BounceData is the mechanic payload for a bounce session.
type BounceData struct {
	BallX    float64       `json:"ballX"`
	BallY    float64       `json:"ballY"`
	VX       float64       `json:"vx"`
	VY       float64       `json:"vy"`
	PaddleX  float64       `json:"paddleX"`
	Bricks   []BounceBrick `json:"bricks"`
	ServeVY  float64       `json:"serveVY"`
	Inverted bool          `json:"inverted"`
}

func (b *bounceSim) Mechanic() config.Mechanic { return config.MechanicBounce }

func (b *bounceSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	b.rng = r
	rows := cfg.Difficulty // 2..4 brick rows
	symbols := Symbols(cfg.Element)

	bricks := make([]BounceBrick, 0, rows*bounceBrickCols)
	bw := 1.0 / bounceBrickCols
	for row := 0; row < rows; row++ {
		for col := 0; col < bounceBrickCols; col++ {
			bricks = append(bricks, BounceBrick{
				X:      float64(col) * bw,
				Y:      0.08 + float64(row)*0.06,
				W:      bw,
				H:      0.06,
				Alive:  true,
				Symbol: engine.Pick(r, symbols),
			})
		}
	}

	serveVY := 0.50 + 0.10*float64(cfg.Difficulty-2)
	return &BounceData{
		BallX:    0.5,
		BallY:    0.6,
		VX:       r.Range(-0.2, 0.2),
		VY:       -serveVY,
		PaddleX:  0.5,
		Bricks:   bricks,
		ServeVY:  serveVY,
		Inverted: cfg.Modifier == config.ModifierInverted,
	}, nil
}

func (b *bounceSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*BounceData)
	if !ok || in.Type != session.InputPointer {
		return session.SignalNone
	}
	x := in.X
	if d.Inverted {
		x = 1 - x
	}
	d.PaddleX = clamp01(x)
	return session.SignalNone
}

func (b *bounceSim) Tick(st *session.State, dt time.Duration) session.Signal {
	d, ok := st.Data.(*BounceData)
	if !ok {
		return session.SignalNone
	}
	sec := dt.Seconds()
	d.BallX += d.VX * sec
	d.BallY += d.VY * sec

	// Side and top walls: invert the component, clamp inside bounds.
	if d.BallX < bounceBallR {
		d.BallX = bounceBallR
		d.VX = -d.VX
	} else if d.BallX > 1-bounceBallR {
		d.BallX = 1 - bounceBallR
		d.VX = -d.VX
	}
	if d.BallY < bounceBallR {
		d.BallY = bounceBallR
		d.VY = -d.VY
	}

	// Paddle: only while the ball is moving down.
	if d.VY > 0 && d.BallY+bounceBallR >= bouncePaddleY && d.BallY-bounceBallR <= bouncePaddleY+0.02 {
		if abs(d.BallX-d.PaddleX) <= bouncePaddleHalf+bounceBallR {
			d.BallY = bouncePaddleY - bounceBallR
			d.VY = -d.VY
			d.VX += (d.BallX - d.PaddleX) * bounceSpinFactor
		}
	}

	// Bricks: simple bounding-box overlap, one brick per tick.
	for i := range d.Bricks {
		br := &d.Bricks[i]
		if !br.Alive {
			continue
		}
		if d.BallX+bounceBallR >= br.X && d.BallX-bounceBallR <= br.X+br.W &&
			d.BallY+bounceBallR >= br.Y && d.BallY-bounceBallR <= br.Y+br.H {
			br.Alive = false
			d.VY = -d.VY
			st.AddScore(1)
			st.LogMove("brick", br.Symbol, session.Bool(true))
			if st.QuotaReached() {
				return session.SignalWon
			}
			break
		}
	}

	// Dropped ball.
	if d.BallY > 1+bounceBallR {
		st.LogMove("drop", "", session.Bool(false))
		if st.Miss() {
			return session.SignalLost
		}
		d.BallX, d.BallY = 0.5, 0.6
		d.VX = b.rng.Range(-0.2, 0.2)
		d.VY = -d.ServeVY
	}
	return session.SignalNone
}

func (b *bounceSim) Expire(st *session.State) session.Signal {
	if st.QuotaReached() {
		return session.SignalWon
	}
	return session.SignalLost
}
