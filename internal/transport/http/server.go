// Package http exposes the diagnostic service over a JSON REST API plus a
// websocket completion feed.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ppif-diagnostic/internal/app"
	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/roi"
)

// Server wires the application service into HTTP handlers.
type Server struct {
	service  *app.AssessmentService
	hub      *app.Hub
	log      *zap.Logger
	apiKey   string
	now      func() time.Time
	upgrader websocket.Upgrader
}

// Option adjusts server construction.
type Option func(*Server)

// WithAPIKey enables X-API-Key authentication on the /v1 routes.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithClock overrides the server clock; used by report tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(service *app.AssessmentService, hub *app.Hub, log *zap.Logger, opts ...Option) *Server {
	s := &Server{
		service: service,
		hub:     hub,
		log:     log,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/ws/events", s.handleEvents).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	if s.apiKey != "" {
		api.Use(s.requireAPIKey)
	}

	api.HandleFunc("/organizations", s.handleCreateOrganization).Methods(http.MethodPost)
	api.HandleFunc("/organizations/{id}", s.handleGetOrganization).Methods(http.MethodGet)

	api.HandleFunc("/assessments", s.handleCreateAssessment).Methods(http.MethodPost)
	api.HandleFunc("/assessments", s.handleListAssessments).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}", s.handleGetAssessment).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}", s.handlePatchAssessment).Methods(http.MethodPatch)

	api.HandleFunc("/questions", s.handleCatalog).Methods(http.MethodGet)

	api.HandleFunc("/assessments/{id}/answers", s.handleSubmitAnswer).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id}/answers", s.handleListAnswers).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/complete", s.handleComplete).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id}/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/clone", s.handleClone).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id}/report.json", s.handleReportJSON).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/report.csv", s.handleReportCSV).Methods(http.MethodGet)

	api.HandleFunc("/recommendations/{id}/status", s.handleRecommendationStatus).Methods(http.MethodPatch)

	api.HandleFunc("/roi/compute", s.handleROICompute).Methods(http.MethodPost)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps application errors onto HTTP statuses: not-found
// sentinels to 404, lifecycle conflicts to 409, validation to 400.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var missing *domain.UnansweredCriticalError
	var invalid *roi.ValidationError
	switch {
	case app.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &missing):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":                    "assessment has unanswered critical questions",
			"missingCriticalQuestions": missing.QuestionIDs,
		})
	case errors.Is(err, domain.ErrAssessmentCompleted),
		errors.Is(err, domain.ErrAssessmentNotCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": invalid.Fields,
		})
	case errors.Is(err, domain.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
