package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/mechanics"
	"github.com/playroot/daily-arcade-go/internal/session"
	"github.com/playroot/daily-arcade-go/internal/store"
)

// handleDaily returns the deterministic config for one calendar day,
// defaulting to today UTC.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeInvalidDate,
				"date must be YYYY-MM-DD", map[string]any{"date": raw})
			return
		}
		date = parsed
	}

	cfg, err := config.Daily(date)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to generate daily config", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, DailyResponse{
		Date:   date.Format("2006-01-02"),
		Seed:   cfg.Seed,
		Config: cfg,
	})
}

// handleConfig returns the config generated from an arbitrary seed.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "seed")
	seed64, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeInvalidSeed,
			"seed must be a signed 32-bit integer", map[string]any{"seed": raw})
		return
	}

	cfg, err := config.Generate(int32(seed64))
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to generate config", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, ConfigResponse{Seed: cfg.Seed, Config: cfg})
}

// handleCreateSession starts a hosted session from a seed or a date.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeValidation,
			"invalid request body", map[string]any{"cause": err.Error()})
		return
	}

	var seed int32
	switch {
	case req.Seed != nil:
		seed = *req.Seed
	case req.Date != "":
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeInvalidDate,
				"date must be YYYY-MM-DD", map[string]any{"date": req.Date})
			return
		}
		seed = engine.DailySeed(date)
	default:
		seed = engine.DailySeed(time.Now().UTC())
	}

	cfg, err := config.Generate(seed)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to generate config", map[string]any{"cause": err.Error()})
		return
	}

	sess, err := mechanics.NewSession(cfg)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to build session", map[string]any{"cause": err.Error()})
		return
	}
	if err := sess.Start(); err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to start session", map[string]any{"cause": err.Error()})
		return
	}

	s.hub.Add(sess)
	payload, err := s.hub.Snapshot(s.hub.Get(sess.ID().String()))
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to snapshot session", map[string]any{"cause": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", Version)
	w.WriteHeader(http.StatusCreated)
	w.Write(payload)
}

// handleGetSession returns the full state snapshot for rendering. Sessions
// evicted from memory are served from their stored snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if hs := s.hub.Get(id); hs != nil {
		payload, err := s.hub.Snapshot(hs)
		if err != nil {
			s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
				"failed to snapshot session", map[string]any{"cause": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Engine-Version", Version)
		w.Write(payload)
		return
	}

	rec, err := s.db.LoadSession(id)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to load session", map[string]any{"cause": err.Error()})
		return
	}
	if rec == nil {
		s.errorHandler.WriteError(w, r, http.StatusNotFound, ErrTypeSessionNotFound,
			"session not found", map[string]any{"id": id})
		return
	}

	var st session.State
	if err := json.Unmarshal([]byte(rec.StateJSON), &st); err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to decode stored state", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{ID: rec.ID, Seed: rec.Seed, State: &st})
}

// handleSessionEvent applies one tick or input event.
func (s *Server) handleSessionEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hs := s.hub.Get(id)
	if hs == nil {
		s.errorHandler.WriteError(w, r, http.StatusNotFound, ErrTypeSessionNotFound,
			"session not found or no longer live", map[string]any{"id": id})
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeValidation,
			"invalid request body", map[string]any{"cause": err.Error()})
		return
	}

	err := s.hub.Apply(hs, func(sess *session.Session) error {
		switch req.Type {
		case "tick":
			return sess.HandleTick(time.Duration(req.DeltaMS) * time.Millisecond)
		case "input":
			if req.Input == nil {
				return APIError{Type: ErrTypeInvalidEvent, Message: "input event carries no input"}
			}
			return sess.HandleInput(*req.Input)
		default:
			return APIError{Type: ErrTypeInvalidEvent, Message: "event type must be tick or input"}
		}
	})

	switch {
	case err == nil:
	case err == session.ErrCompleted:
		s.errorHandler.WriteError(w, r, http.StatusConflict, ErrTypeSessionCompleted,
			"session already completed", map[string]any{"id": id})
		return
	default:
		if apiErr, ok := err.(APIError); ok {
			s.errorHandler.WriteError(w, r, http.StatusBadRequest, apiErr.Type, apiErr.Message, nil)
			return
		}
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to apply event", map[string]any{"cause": err.Error()})
		return
	}

	payload, err := s.hub.Snapshot(hs)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to snapshot session", map[string]any{"cause": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", Version)
	w.Write(payload)
}

// handleSessionResult returns the terminal result, 409 while the session is
// still active.
func (s *Server) handleSessionResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if hs := s.hub.Get(id); hs != nil {
		hs.mu.Lock()
		res, done := hs.sess.Result()
		hs.mu.Unlock()
		if !done {
			s.errorHandler.WriteError(w, r, http.StatusConflict, ErrTypeSessionActive,
				"session has not completed", map[string]any{"id": id})
			return
		}
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := s.db.GetResult(id)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to load result", map[string]any{"cause": err.Error()})
		return
	}
	if res == nil {
		s.errorHandler.WriteError(w, r, http.StatusNotFound, ErrTypeSessionNotFound,
			"no result for session", map[string]any{"id": id})
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleStats returns aggregate stats, optionally filtered by mechanic or
// seed.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	query := store.StatsQuery{Mechanic: r.URL.Query().Get("mechanic")}
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed64, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			s.errorHandler.WriteError(w, r, http.StatusBadRequest, ErrTypeInvalidSeed,
				"seed must be a signed 32-bit integer", map[string]any{"seed": raw})
			return
		}
		seed := int32(seed64)
		query.Seed = &seed
	}

	stats, err := s.db.AggregateStats(query)
	if err != nil {
		s.errorHandler.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
			"failed to aggregate stats", map[string]any{"cause": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, StatsResponse{Stats: stats})
}
