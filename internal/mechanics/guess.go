package mechanics

import (
	"strings"
	"time"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/session"
)

func init() {
	register(config.MechanicGuess, func() session.Simulator { return &guessSim{} })
}

const (
	guessAlphabetSize = 6

	// Feedback marks per position.
	FeedbackExact   = "exact"
	FeedbackPartial = "partial"
	FeedbackAbsent  = "absent"
)

// guessSim is the sequence-guessing mechanic: the player assembles a guess
// from a small alphabet and submits it for per-position feedback, wordle
// style. Repeated symbols are credited through consume tracking so a guess
// never earns more partials than the target actually contains.
type guessSim struct{}

// GuessData is the mechanic payload for a guess session.
type GuessData struct {
	Alphabet []string   `json:"alphabet"`
	Target   []string   `json:"target"`
	Pending  []string   `json:"pending"`
	Guesses  [][]string `json:"guesses"`
	Feedback [][]string `json:"feedback"`
}

func (g *guessSim) Mechanic() config.Mechanic { return config.MechanicGuess }

func (g *guessSim) Init(cfg config.GameConfig, r *engine.Rand) (any, error) {
	symbols := Symbols(cfg.Element)
	size := guessAlphabetSize
	if size > len(symbols) {
		size = len(symbols)
	}
	alphabet := engine.PickN(r, symbols, size)

	length := cfg.Difficulty + 2
	target := make([]string, length)
	for i := range target {
		target[i] = engine.Pick(r, alphabet)
	}
	// Slices start empty, not nil, so snapshots marshal as [] rather than
	// null.
	return &GuessData{
		Alphabet: alphabet,
		Target:   target,
		Pending:  []string{},
		Guesses:  [][]string{},
		Feedback: [][]string{},
	}, nil
}

func (g *guessSim) Tick(st *session.State, dt time.Duration) session.Signal {
	return session.SignalNone
}

func (g *guessSim) Input(st *session.State, in session.Input) session.Signal {
	d, ok := st.Data.(*GuessData)
	if !ok {
		return session.SignalNone
	}
	switch in.Type {
	case session.InputSelect:
		if in.Index < 0 || in.Index >= len(d.Alphabet) {
			return session.SignalNone
		}
		if len(d.Pending) < len(d.Target) {
			d.Pending = append(d.Pending, d.Alphabet[in.Index])
		}
		return session.SignalNone

	case session.InputSubmit:
		// An incomplete guess is rejected, not counted as an attempt.
		if len(d.Pending) < len(d.Target) {
			return session.SignalNone
		}
		guess := d.Pending
		d.Pending = make([]string, 0, len(d.Target))
		fb := GuessFeedback(d.Target, guess)
		d.Guesses = append(d.Guesses, guess)
		d.Feedback = append(d.Feedback, fb)

		exact := 0
		partial := 0
		for _, mark := range fb {
			switch mark {
			case FeedbackExact:
				exact++
			case FeedbackPartial:
				partial++
			}
		}
		solved := exact == len(d.Target)
		st.AddScore(2*exact + partial)
		st.LogMove("guess", strings.Join(guess, ","), session.Bool(solved))

		if solved {
			return session.SignalWon
		}
		if st.Miss() {
			return session.SignalLost
		}
		return session.SignalNone
	}
	return session.SignalNone
}

func (g *guessSim) Expire(st *session.State) session.Signal {
	return session.SignalLost
}

// GuessFeedback scores a guess against a target in two passes. The first
// marks exact-position matches and consumes those target positions; the
// second matches the remaining guess symbols against unconsumed target
// positions only. This is what prevents a repeated symbol from being
// credited twice.
func GuessFeedback(target, guess []string) []string {
	fb := make([]string, len(target))
	used := make([]bool, len(target))

	for i := range guess {
		if i < len(target) && guess[i] == target[i] {
			fb[i] = FeedbackExact
			used[i] = true
		}
	}
	for i := range guess {
		if fb[i] != "" {
			continue
		}
		fb[i] = FeedbackAbsent
		for j := range target {
			if !used[j] && target[j] == guess[i] {
				fb[i] = FeedbackPartial
				used[j] = true
				break
			}
		}
	}
	return fb
}
