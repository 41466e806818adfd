// Package api serves a read-only JSON view of shopping lists and expenses.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/shoplist"
)

const defaultExpensesLimit = 5

// Server provides the HTTP API.
type Server struct {
	svc    *service.Service
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Handle mounts an extra handler, e.g. the Telegram webhook.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/users/{user_id}/list", s.handleGetList)
	s.mux.HandleFunc("GET /api/users/{user_id}/expenses", s.handleGetExpenses)
	s.mux.HandleFunc("GET /api/users/{user_id}/expenses/total", s.handleGetTotal)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// pathUserID extracts the {user_id} path value.
func pathUserID(r *http.Request) (int64, error) {
	raw := r.PathValue("user_id")
	if raw == "" {
		return 0, fmt.Errorf("missing user_id in path")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// requireUserID writes an error response and returns false when the path
// carries no valid user id.
func (s *Server) requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathUserID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "user_id must be an integer")
		return 0, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type listResponse struct {
	UserID   int64             `json:"user_id"`
	Sections []models.Section  `json:"sections"`
	Text     string            `json:"text"`
	Progress shoplist.Progress `json:"progress"`
	Editing  bool              `json:"editing"`
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	snap, err := s.svc.CurrentList(userID)
	if errors.Is(err, service.ErrNoList) {
		s.respondError(w, http.StatusNotFound, "user has no shopping list")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to get shopping list")
		s.respondError(w, http.StatusInternalServerError, "failed to get shopping list")
		return
	}

	s.respondJSON(w, http.StatusOK, listResponse{
		UserID:   userID,
		Sections: snap.List.Sections,
		Text:     shoplist.Format(snap.List),
		Progress: snap.Progress,
		Editing:  snap.Editing,
	})
}

func (s *Server) handleGetExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	limit := defaultExpensesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records := s.svc.Expenses(r.Context(), userID, limit)
	if records == nil {
		records = []*models.PurchaseRecord{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetTotal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int64{
		"user_id":    userID,
		"total_cost": s.svc.TotalExpenses(r.Context(), userID),
	})
}
