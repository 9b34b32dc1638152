package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/chart"
	"github.com/jbonatakis/skinwell/internal/config"
	"github.com/jbonatakis/skinwell/internal/report"
	"github.com/jbonatakis/skinwell/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			s.respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and "+strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	sessions, err := s.store.ListSessions(r.Context(), limit)
	if err != nil {
		s.logger.Error("list sessions", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// loadReport resolves the {id} parameter, which may be an id prefix, and
// writes the error response itself when it fails.
func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	ref := chi.URLParam(r, "id")
	sess, err := s.store.ResolveSession(r.Context(), ref)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			s.respondError(w, http.StatusNotFound, "session_not_found", "session not found")
			return report.Report{}, false
		}
		if errors.Is(err, store.ErrAmbiguousSession) {
			s.respondError(w, http.StatusBadRequest, "ambiguous_session", err.Error())
			return report.Report{}, false
		}
		s.logger.Error("resolve session", zap.String("ref", ref), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to load session")
		return report.Report{}, false
	}

	assessments, err := s.store.LoadAssessments(r.Context(), sess.ID)
	if err != nil {
		s.logger.Error("load assessments", zap.String("session", sess.ID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to load assessments")
		return report.Report{}, false
	}
	return report.Build(sess, assessments), true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, rep)
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	cfg := chart.DefaultSVGConfig()
	cfg.Width = s.opts.SizePx
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < config.MinChartSizePx || n > config.MaxChartSizePx {
			s.respondError(w, http.StatusBadRequest, "invalid_size",
				"size must be between "+strconv.Itoa(config.MinChartSizePx)+" and "+strconv.Itoa(config.MaxChartSizePx))
			return
		}
		cfg.Width = n
	}

	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.SVG(rep, cfg, s.opts.Rounded)))
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Markdown(rep)))
}
