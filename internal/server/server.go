// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/logger"
	"talent-match/internal/common/validation"
	"talent-match/internal/models"
	"talent-match/internal/search"
	"talent-match/internal/shortlist"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 30 * time.Second

// Searcher runs one search request.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*models.RankedResults, error)
}

// Shortlister generates, inspects and resets project shortlists.
type Shortlister interface {
	Generate(ctx context.Context, projectID string) (*shortlist.Result, error)
	Eligibility(ctx context.Context, projectID string) (*shortlist.Eligibility, error)
	Reset(ctx context.Context, projectID string) error
}

// ProjectLoader resolves a project referenced by a search request.
type ProjectLoader interface {
	Project(ctx context.Context, projectID string) (*models.Opportunity, error)
}

// Server exposes the matching core over HTTP.
type Server struct {
	searcher   Searcher
	shortlists Shortlister
	projects   ProjectLoader
	logger     logger.Logger
	mux        *http.ServeMux
}

func New(searcher Searcher, shortlists Shortlister, projects ProjectLoader, log logger.Logger) *Server {
	s := &Server{
		searcher:   searcher,
		shortlists: shortlists,
		projects:   projects,
		logger:     log,
		mux:        http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /v1/search", s.handleSearch)
	s.mux.HandleFunc("POST /v1/projects/{id}/shortlist", s.handleShortlist)
	s.mux.HandleFunc("GET /v1/projects/{id}/shortlist/eligibility", s.handleShortlistEligibility)
	s.mux.HandleFunc("DELETE /v1/projects/{id}/shortlist", s.handleShortlistReset)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, apperrors.NewValidationError("request body must be valid JSON"))
		return
	}

	violations, err := validation.ValidateSearchRequest(payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(violations) > 0 {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "invalid search request",
			"violations": violations,
		})
		return
	}

	req := search.Request{
		Query:     stringField(payload, "query"),
		CompanyID: stringField(payload, "companyId"),
		Mode:      models.SearchMode(stringField(payload, "mode")),
	}

	if projectID := stringField(payload, "projectId"); projectID != "" {
		project, err := s.projects.Project(ctx, projectID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		req.Project = project
	}

	results, err := s.searcher.Search(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := s.shortlists.Generate(ctx, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if result.Generated {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, result)
}

func (s *Server) handleShortlistEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	eligibility, err := s.shortlists.Eligibility(ctx, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, eligibility)
}

func (s *Server) handleShortlistReset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := s.shortlists.Reset(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeValidationFailed:
		status = http.StatusBadRequest
	case apperrors.ErrCodeProjectNotFound:
		status = http.StatusNotFound
	default:
		if apperrors.IsRetryable(err) {
			status = http.StatusServiceUnavailable
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", nil)
	}

	body := map[string]interface{}{"error": err.Error()}
	if code := apperrors.CodeOf(err); code != "" {
		body["code"] = string(code)
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("response encoding failed", nil)
	}
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
