package engine

import "time"

// DailySeed encodes a calendar date as year*10000 + month*100 + day with a
// 0-based month, so 2025-01-15 (January) becomes 20250015. Every player who
// opens the app on the same UTC day derives the same seed and therefore the
// same puzzle.
//
// The encoding is not collision-free across arbitrary centuries; within the
// supported range (four-digit years) distinct dates map to distinct seeds.
// Preserve the scheme as-is: changing it changes every published daily
// puzzle retroactively.
func DailySeed(date time.Time) int32 {
	y := date.Year()
	m := int(date.Month()) - 1
	d := date.Day()
	return int32(y*10000 + m*100 + d)
}

// SeedDate recovers the (UTC midnight) date a daily seed encodes. Seeds that
// were not produced by DailySeed still decode without error; callers that
// care should round-trip and compare.
func SeedDate(seed int32) time.Time {
	s := int(seed)
	y := s / 10000
	m := (s % 10000) / 100
	d := s % 100
	return time.Date(y, time.Month(m+1), d, 0, 0, 0, 0, time.UTC)
}
