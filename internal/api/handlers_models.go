package api

import (
	"encoding/json"
	"net/http"

	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/sentence"
)

// handleListModels returns catalog models, optionally filtered by the
// language query parameter.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	langParam := r.URL.Query().Get("language")

	var models []model.Info
	if langParam == "" {
		models = append(model.Available(sentence.English), model.Available(sentence.Chinese)...)
	} else {
		models = model.Available(sentence.ParseLanguage(langParam))
	}
	if models == nil {
		models = []model.Info{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"models": models})
}

// handleModelStats returns rolling latency stats per model.
func (s *Server) handleModelStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "model stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":       s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
