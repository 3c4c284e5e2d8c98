package api

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/owl"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

// Server is an HTTP API server that exposes a converted ontology.
type Server struct {
	onto      *models.Ontology
	store     store.Store // nil = push disabled
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(onto *models.Ontology, st store.Store, logger *slog.Logger, authToken string) *Server {
	return &Server{
		onto:      onto,
		store:     st,
		logger:    logger,
		authToken: authToken,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics: no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/ontology", s.auth(s.handleOntology))
	mux.HandleFunc("GET /v1/classes", s.auth(s.handleListClasses))
	mux.HandleFunc("GET /v1/classes/{uri...}", s.auth(s.handleGetClass))
	mux.HandleFunc("GET /v1/object-properties", s.auth(s.handleListObjectProperties))
	mux.HandleFunc("GET /v1/object-properties/{uri...}", s.auth(s.handleGetObjectProperty))
	mux.HandleFunc("GET /v1/datatype-properties", s.auth(s.handleListDataTypeProperties))
	mux.HandleFunc("GET /v1/datatype-properties/{uri...}", s.auth(s.handleGetDataTypeProperty))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))
	mux.HandleFunc("POST /v1/push", s.auth(s.handlePush))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "run_id": s.onto.RunID})
}

func (s *Server) handleOntology(w http.ResponseWriter, r *http.Request) {
	format, err := owl.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	info, _ := format.Info()

	var buf bytes.Buffer
	if err := owl.Write(&buf, s.onto, format); err != nil {
		s.logger.Error("failed to serialize ontology", "format", format, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to serialize ontology")
		return
	}

	w.Header().Set("Content-Type", info.MIMEType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// listResponse wraps list endpoints.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

func (s *Server) handleListClasses(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, newList(s.onto.Classes))
}

func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	uri := r.PathValue("uri")
	c, ok := s.onto.ClassByIRI(uri)
	if !ok {
		s.writeError(w, http.StatusNotFound, "class not found")
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleListObjectProperties(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, newList(s.onto.ObjectProperties))
}

func (s *Server) handleGetObjectProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := s.onto.ObjectPropertyByIRI(r.PathValue("uri"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "object property not found")
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListDataTypeProperties(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, newList(s.onto.DataTypeProperties))
}

func (s *Server) handleGetDataTypeProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := s.onto.DataTypePropertyByIRI(r.PathValue("uri"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "datatype property not found")
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// statsResponse is returned by GET /v1/stats.
type statsResponse struct {
	BaseIRI string               `json:"base_iri"`
	RunID   string               `json:"run_id"`
	Stats   models.OntologyStats `json:"stats"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, statsResponse{
		BaseIRI: s.onto.BaseIRI,
		RunID:   s.onto.RunID,
		Stats:   s.onto.Stats,
	})
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "graph store not configured")
		return
	}
	if err := s.store.Save(r.Context(), s.onto); err != nil {
		s.logger.Error("failed to push ontology", "base_iri", s.onto.BaseIRI, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to push ontology")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"pushed": true, "run_id": s.onto.RunID})
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
