// Package api provides the HTTP API for the todo service.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP API server.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger
	todos  *TodoHandler
	assist *AssistHandler
	auth   *AuthMiddleware
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, todos *TodoHandler, assist *AssistHandler, auth *AuthMiddleware, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		todos:  todos,
		assist: assist,
		auth:   auth,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes. Everything except the health check
// requires an authenticated session.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Todos
	s.mux.HandleFunc("GET /api/v1/todos", s.auth.Require(s.todos.List))
	s.mux.HandleFunc("POST /api/v1/todos", s.auth.Require(s.todos.Create))
	s.mux.HandleFunc("PUT /api/v1/todos/{todoID}", s.auth.Require(s.todos.Update))
	s.mux.HandleFunc("PATCH /api/v1/todos/{todoID}/complete", s.auth.Require(s.todos.ToggleComplete))
	s.mux.HandleFunc("DELETE /api/v1/todos/{todoID}", s.auth.Require(s.todos.Delete))

	// AI
	s.mux.HandleFunc("POST /ai/extract-task", s.auth.Require(s.assist.ExtractTask))
	s.mux.HandleFunc("POST /ai/analyze-todos", s.auth.Require(s.assist.AnalyzeTodos))
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the route multiplexer.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but can't do much at this point
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeSuccess wraps data in the success envelope used by the AI routes.
func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}
