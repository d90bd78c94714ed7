package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playroot/daily-arcade-go/internal/store"
)

// Version is the engine version reported by health and response headers.
const Version = "1.0.0"

// Server handles HTTP requests.
type Server struct {
	db           store.DB
	hub          *Hub
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewServer creates a new API server.
func NewServer(db store.DB, logger *slog.Logger) *Server {
	return &Server{
		db:           db,
		hub:          NewHub(db, logger),
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
	}
}

// Routes sets up the HTTP routes with proper middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", MetricsHandler().ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/daily", s.handleDaily)
		r.Get("/configs/{seed}", s.handleConfig)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/events", s.handleSessionEvent)
		r.Get("/sessions/{id}/result", s.handleSessionResult)
		r.Get("/sessions/{id}/ws", s.handleSessionWS)
		r.Get("/stats", s.handleStats)
	})

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", Version)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSONBody(w http.ResponseWriter, data any) error {
	return json.NewEncoder(w).Encode(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
