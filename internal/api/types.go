package api

import (
	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/session"
	"github.com/playroot/daily-arcade-go/internal/store"
)

// APIError represents a structured error response with context.
type APIError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// Error types with proper categorization.
const (
	// Input validation errors
	ErrTypeInvalidSeed  = "invalid_seed"
	ErrTypeInvalidDate  = "invalid_date"
	ErrTypeInvalidEvent = "invalid_event"
	ErrTypeValidation   = "validation_error"

	// Session-related errors
	ErrTypeSessionNotFound  = "session_not_found"
	ErrTypeSessionCompleted = "session_completed"
	ErrTypeSessionActive    = "session_active"

	// System errors
	ErrTypeInternal = "internal_error"
)

// DailyResponse carries the deterministic config for one calendar day.
type DailyResponse struct {
	Date   string            `json:"date"`
	Seed   int32             `json:"seed"`
	Config config.GameConfig `json:"config"`
}

// ConfigResponse carries the config generated from an arbitrary seed.
type ConfigResponse struct {
	Seed   int32             `json:"seed"`
	Config config.GameConfig `json:"config"`
}

// CreateSessionRequest starts a hosted session from a seed or a date. With
// neither set the session plays today's daily puzzle.
type CreateSessionRequest struct {
	Seed *int32 `json:"seed,omitempty"`
	Date string `json:"date,omitempty"` // YYYY-MM-DD, UTC
}

// EventRequest applies one client-driven event to a hosted session. The
// client supplies dt so the server stays deterministic and replayable.
type EventRequest struct {
	Type    string         `json:"type"` // "tick" or "input"
	DeltaMS int64          `json:"deltaMs,omitempty"`
	Input   *session.Input `json:"input,omitempty"`
}

// SessionResponse is the full state snapshot for rendering.
type SessionResponse struct {
	ID     string          `json:"id"`
	Seed   int32           `json:"seed"`
	State  *session.State  `json:"state"`
	Result *session.Result `json:"result,omitempty"`
}

// StatsResponse wraps the aggregate stats.
type StatsResponse struct {
	Stats *store.Stats `json:"stats"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
