package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/parser"
	"github.com/briefd/briefd/internal/pipeline"
	"github.com/briefd/briefd/internal/sentence"
	"github.com/go-chi/chi/v5"
)

type summarizeRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences"`
	Model        string `json:"model,omitempty"`
	Language     string `json:"language,omitempty"`
}

// handleSummarize runs the pipeline synchronously on JSON text input.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2<<20)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	preq, err := s.pipelineRequest(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.summarize(r.Context(), preq)
	if err != nil {
		if pipeline.IsValidationError(err) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// handleSummarizeFile accepts a document upload and queues an async job.
func (s *Server) handleSummarizeFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	req := summarizeRequest{
		Text:     doc.Text,
		Model:    r.FormValue("model"),
		Language: r.FormValue("language"),
	}
	if v := r.FormValue("max_sentences"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.MaxSentences = n
		}
	}

	preq, err := s.pipelineRequest(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(filename, preq)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"filename": job.Filename,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// pipelineRequest fills defaults: language falls back to english, the
// model to the language's catalog default.
func (s *Server) pipelineRequest(req summarizeRequest) (pipeline.Request, error) {
	lang := sentence.ParseLanguage(req.Language)

	name := req.Model
	if name == "" {
		if lang == sentence.English && s.cfg.DefaultModel != "" {
			name = s.cfg.DefaultModel
		} else {
			name = model.DefaultFor(lang)
		}
	}
	if _, ok := model.Lookup(name); !ok {
		return pipeline.Request{}, fmt.Errorf("unknown model %q", name)
	}

	maxSentences := req.MaxSentences
	if maxSentences == 0 {
		maxSentences = 5
	}

	return pipeline.Request{
		Text:         req.Text,
		MaxSentences: maxSentences,
		Model:        name,
		Language:     lang,
	}, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
