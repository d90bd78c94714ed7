package store

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AggregateStats computes win/score aggregates over stored results. SQLite
// does the counting; rates and averages are derived with decimals so the
// reported values are exact at two places.
func (s *SQLiteDB) AggregateStats(query StatsQuery) (*Stats, error) {
	whereClause, args := resultFilter(query.Mechanic, query.Seed)

	totalsQuery := `SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(SUM(score), 0),
		COALESCE(SUM(elapsed_ms), 0), COALESCE(MAX(score), 0)
		FROM results ` + whereClause

	var total, wins, scoreSum int
	var elapsedSum int64
	var best int
	if err := s.db.QueryRow(totalsQuery, args...).Scan(&total, &wins, &scoreSum, &elapsedSum, &best); err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	stats := &Stats{
		TotalGames: total,
		Wins:       wins,
		Losses:     total - wins,
		BestScore:  best,
		ByMechanic: map[string]MechanicStats{},
	}
	if total > 0 {
		n := decimal.NewFromInt(int64(total))
		stats.WinRate = decimal.NewFromInt(int64(wins)).Div(n).Round(2)
		stats.AvgScore = decimal.NewFromInt(int64(scoreSum)).Div(n).Round(2)
		stats.AvgElapsedMS = decimal.NewFromInt(elapsedSum).Div(n).Round(2)
	}

	byMechQuery := `SELECT mechanic, COUNT(*), COALESCE(SUM(won), 0)
		FROM results ` + whereClause + ` GROUP BY mechanic`
	rows, err := s.db.Query(byMechQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by mechanic: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mechanic string
		var games, mWins int
		if err := rows.Scan(&mechanic, &games, &mWins); err != nil {
			return nil, fmt.Errorf("failed to scan mechanic aggregate: %w", err)
		}
		ms := MechanicStats{Games: games, Wins: mWins}
		if games > 0 {
			ms.WinRate = decimal.NewFromInt(int64(mWins)).Div(decimal.NewFromInt(int64(games))).Round(2)
		}
		stats.ByMechanic[mechanic] = ms
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mechanic aggregates: %w", err)
	}

	return stats, nil
}
