package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/playroot/daily-arcade-go/internal/session"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			mechanic TEXT NOT NULL,
			state_json TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			session_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			mechanic TEXT NOT NULL,
			element TEXT NOT NULL,
			constraint_kind TEXT NOT NULL,
			modifier TEXT NOT NULL DEFAULT '',
			difficulty INTEGER NOT NULL,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			max_attempts INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			date DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_seed ON results(seed)`,
		`CREATE INDEX IF NOT EXISTS idx_results_mechanic ON results(mechanic)`,
		`CREATE INDEX IF NOT EXISTS idx_results_date ON results(date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_seed ON sessions(seed)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveSession upserts a session snapshot.
func (s *SQLiteDB) SaveSession(rec *SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("session record has no id")
	}
	completedInt := 0
	if rec.Completed {
		completedInt = 1
	}

	query := `INSERT INTO sessions (id, seed, mechanic, state_json, completed, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			state_json = excluded.state_json,
			completed = excluded.completed,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.Exec(query, rec.ID, rec.Seed, rec.Mechanic, rec.StateJSON, completedInt)
	return err
}

// LoadSession retrieves a session snapshot by ID. An absent or corrupt
// snapshot returns nil with no error so callers treat both as a fresh start.
func (s *SQLiteDB) LoadSession(id string) (*SessionRecord, error) {
	query := `SELECT id, seed, mechanic, state_json, completed, updated_at
		FROM sessions WHERE id = ?`

	var rec SessionRecord
	var completedInt int
	err := s.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.Seed, &rec.Mechanic, &rec.StateJSON, &completedInt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(rec.StateJSON)) {
		// A corrupt snapshot is unrecoverable; drop it rather than fail.
		_ = s.ClearSession(id)
		return nil, nil
	}

	rec.Completed = completedInt == 1
	return &rec, nil
}

// ClearSession removes a session snapshot.
func (s *SQLiteDB) ClearSession(id string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

// SaveResult saves a completed session's result.
func (s *SQLiteDB) SaveResult(res *session.Result) error {
	query := `INSERT INTO results (
		session_id, seed, mechanic, element, constraint_kind, modifier, difficulty,
		won, score, max_score, attempts, max_attempts, elapsed_ms, date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	wonInt := 0
	if res.Won {
		wonInt = 1
	}

	_, err := s.db.Exec(query,
		res.SessionID, res.Seed,
		string(res.Config.Mechanic), string(res.Config.Element),
		string(res.Config.Constraint), string(res.Config.Modifier),
		res.Config.Difficulty,
		wonInt, res.Score, res.MaxScore, res.Attempts, res.MaxAttempts,
		res.Elapsed.Milliseconds(), res.Date,
	)
	return err
}

// GetResult retrieves the result for a session.
func (s *SQLiteDB) GetResult(sessionID string) (*session.Result, error) {
	query := `SELECT session_id, seed, mechanic, element, constraint_kind, modifier,
		difficulty, won, score, max_score, attempts, max_attempts, elapsed_ms, date
		FROM results WHERE session_id = ?`

	row, err := scanResultRow(s.db.QueryRow(query, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := row.toResult()
	return &res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResultRow(sc rowScanner) (resultRow, error) {
	var r resultRow
	var wonInt int
	err := sc.Scan(
		&r.SessionID, &r.Seed, &r.Mechanic, &r.Element, &r.Constraint, &r.Modifier,
		&r.Difficulty, &wonInt, &r.Score, &r.MaxScore, &r.Attempts, &r.MaxAttempts,
		&r.ElapsedMS, &r.Date,
	)
	if err != nil {
		return resultRow{}, err
	}
	r.Won = wonInt == 1
	return r, nil
}

// ListResults retrieves results with pagination and filtering.
func (s *SQLiteDB) ListResults(query ResultsQuery) (*ResultsList, error) {
	whereClause, args := resultFilter(query.Mechanic, query.Seed)

	countQuery := "SELECT COUNT(*) FROM results " + whereClause
	var totalCount int
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50 // Default page size
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT session_id, seed, mechanic, element, constraint_kind, modifier,
		difficulty, won, score, max_score, attempts, max_attempts, elapsed_ms, date
		FROM results ` + whereClause + `
		ORDER BY date DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []session.Result
	for rows.Next() {
		row, err := scanResultRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, row.toResult())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return &ResultsList{
		Results:    results,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

func resultFilter(mechanic string, seed *int32) (string, []any) {
	where := ""
	args := []any{}
	add := func(cond string, v any) {
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, v)
	}
	if mechanic != "" {
		add("mechanic = ?", mechanic)
	}
	if seed != nil {
		add("seed = ?", *seed)
	}
	return where, args
}
