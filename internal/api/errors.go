package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorHandler provides centralized error handling with logging.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteError builds the structured envelope and writes it as JSON.
func (eh *ErrorHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]any) {
	apiErr := APIError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	eh.logger.Log(r.Context(), level, "request failed",
		"type", errType,
		"status", status,
		"request_id", apiErr.RequestID,
		"method", r.Method,
		"path", r.URL.Path,
		"message", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Type", errType)
	w.WriteHeader(status)
	if err := writeJSONBody(w, apiErr); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// RecoveryHandler provides panic recovery with structured error logging.
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				requestID := middleware.GetReqID(r.Context())
				eh.logger.Error("panic recovered",
					"request_id", requestID,
					"path", r.URL.Path,
					"method", r.Method,
					"panic", fmt.Sprintf("%v", rvr),
				)
				eh.WriteError(w, r, http.StatusInternalServerError, ErrTypeInternal,
					"Internal server error", map[string]any{"panic": fmt.Sprintf("%v", rvr)})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
