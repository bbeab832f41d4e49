// Package api exposes the summarization service over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/briefd/briefd/internal/config"
	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for briefd.
type Server struct {
	router       chi.Router
	summarize    pipeline.Func
	orchestrator *pipeline.Orchestrator
	stats        *model.CallStats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. summarize is the
// middleware-wrapped pipeline entry point shared with the orchestrator.
func NewServer(summarize pipeline.Func, orch *pipeline.Orchestrator, stats *model.CallStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		summarize:    summarize,
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.BriefdAPIKey, s.log))

		r.Post("/api/summarize", s.handleSummarize)
		r.Post("/api/summarize/file", s.handleSummarizeFile)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/models", s.handleListModels)
		r.Get("/api/stats/models", s.handleModelStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
