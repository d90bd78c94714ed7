package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
)

// DB is the persistence interface for sessions and results.
type DB interface {
	Close() error
	Migrate() error
	SaveSession(rec *SessionRecord) error
	LoadSession(id string) (*SessionRecord, error)
	ClearSession(id string) error
	SaveResult(res *session.Result) error
	GetResult(sessionID string) (*session.Result, error)
	ListResults(query ResultsQuery) (*ResultsList, error)
	AggregateStats(query StatsQuery) (*Stats, error)
}

// SessionRecord is a persisted session snapshot. State carries the full
// session.State as JSON so a session can be resumed or audited without the
// store knowing mechanic payload shapes.
type SessionRecord struct {
	ID        string    `json:"id" db:"id"`
	Seed      int32     `json:"seed" db:"seed"`
	Mechanic  string    `json:"mechanic" db:"mechanic"`
	StateJSON string    `json:"state_json" db:"state_json"`
	Completed bool      `json:"completed" db:"completed"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ResultsQuery represents query parameters for listing results.
type ResultsQuery struct {
	Mechanic string `json:"mechanic,omitempty"`
	Seed     *int32 `json:"seed,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"perPage"`
}

// ResultsList represents a paginated results response.
type ResultsList struct {
	Results    []session.Result `json:"results"`
	TotalCount int              `json:"totalCount"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalPages int              `json:"totalPages"`
}

// StatsQuery narrows an aggregate to one mechanic or one daily seed; zero
// values aggregate everything.
type StatsQuery struct {
	Mechanic string `json:"mechanic,omitempty"`
	Seed     *int32 `json:"seed,omitempty"`
}

// Stats is an aggregate over stored results. Rates and averages are decimals
// so the API reports exact two-place values instead of drifting floats.
type Stats struct {
	TotalGames   int                      `json:"totalGames"`
	Wins         int                      `json:"wins"`
	Losses       int                      `json:"losses"`
	WinRate      decimal.Decimal          `json:"winRate"`
	AvgScore     decimal.Decimal          `json:"avgScore"`
	AvgElapsedMS decimal.Decimal          `json:"avgElapsedMs"`
	BestScore    int                      `json:"bestScore"`
	ByMechanic   map[string]MechanicStats `json:"byMechanic"`
}

// MechanicStats is the per-mechanic slice of an aggregate.
type MechanicStats struct {
	Games   int             `json:"games"`
	Wins    int             `json:"wins"`
	WinRate decimal.Decimal `json:"winRate"`
}

// resultRow mirrors the results table layout.
type resultRow struct {
	SessionID   string
	Seed        int32
	Mechanic    string
	Element     string
	Constraint  string
	Modifier    string
	Difficulty  int
	Won         bool
	Score       int
	MaxScore    int
	Attempts    int
	MaxAttempts int
	ElapsedMS   int64
	Date        time.Time
}

func (r resultRow) toResult() session.Result {
	return session.Result{
		SessionID: r.SessionID,
		Seed:      r.Seed,
		Config: config.GameConfig{
			Mechanic:   config.Mechanic(r.Mechanic),
			Element:    config.Element(r.Element),
			Constraint: config.Constraint(r.Constraint),
			Modifier:   config.Modifier(r.Modifier),
			Seed:       r.Seed,
			Difficulty: r.Difficulty,
		},
		Won:         r.Won,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		Attempts:    r.Attempts,
		MaxAttempts: r.MaxAttempts,
		Elapsed:     time.Duration(r.ElapsedMS) * time.Millisecond,
		Date:        r.Date,
	}
}
