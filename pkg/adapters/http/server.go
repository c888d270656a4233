package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/grunberg"
	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxImportSize bounds POST /import bodies.
const maxImportSize = 4 << 20

// Server exposes a game session over HTTP.
type Server struct {
	Session ports.GameSession
	Streams *StreamManager

	router   chi.Router
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	detach   func()
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for request failures and stream activity.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer serves GET /metrics from g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates a Server and starts forwarding session events to /events clients.
// Call Close to detach it from the session.
func New(session ports.GameSession, opts ...Option) *Server {
	s := &Server{
		Session: session,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.detach = s.Streams.Attach(session)
	s.router = s.routes()
	return s
}

// NewHandler creates a new HTTP handler for the session.
func NewHandler(session ports.GameSession, opts ...Option) http.Handler {
	return New(session, opts...)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/state", s.GetState)
	r.Post("/actions", s.PostAction)

	r.Get("/save", s.GetSave)
	r.Post("/save", s.PostSave)
	r.Delete("/save", s.DeleteSave)
	r.Post("/load", s.PostLoad)
	r.Get("/export", s.GetExport)
	r.Post("/import", s.PostImport)

	r.Get("/events", s.SubscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close detaches the server from the session and disconnects stream clients.
func (s *Server) Close() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	s.Streams.Close()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActionRequest is the body of POST /actions.
type ActionRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// SaveInfo is the body of GET /save.
type SaveInfo struct {
	Key       string `json:"key,omitempty"`
	Exists    bool   `json:"exists"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":          "grunberg-http",
		"version":      strings.TrimSpace(grunberg.Version),
		"save_version": domain.SaveVersion,
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Session.State())
}

// PostAction handles the POST /actions request.
func (s *Server) PostAction(w http.ResponseWriter, r *http.Request) {
	var body ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	action, err := domain.DecodeAction(body.Type, body.Payload)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	state := s.Session.Dispatch(action)
	s.writeJSON(w, http.StatusOK, state)
}

// GetSave handles the GET /save request.
func (s *Server) GetSave(w http.ResponseWriter, r *http.Request) {
	info := SaveInfo{}
	if keyed, ok := s.Session.(interface{ SaveKey() string }); ok {
		info.Key = keyed.SaveKey()
	}
	info.Timestamp, info.Exists = s.Session.SaveTimestamp(r.Context())
	s.writeJSON(w, http.StatusOK, info)
}

// PostSave handles the POST /save request.
func (s *Server) PostSave(w http.ResponseWriter, r *http.Request) {
	if !s.Session.SaveGame(r.Context()) {
		s.writeError(w, http.StatusInternalServerError, errors.New("save failed"))
		return
	}
	ts, _ := s.Session.SaveTimestamp(r.Context())
	s.writeJSON(w, http.StatusOK, SaveInfo{Exists: true, Timestamp: ts})
}

// DeleteSave handles the DELETE /save request.
func (s *Server) DeleteSave(w http.ResponseWriter, r *http.Request) {
	if !s.Session.DeleteSave(r.Context()) {
		s.writeError(w, http.StatusInternalServerError, errors.New("delete failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostLoad handles the POST /load request.
func (s *Server) PostLoad(w http.ResponseWriter, r *http.Request) {
	if !s.Session.ContinueGame(r.Context()) {
		s.writeError(w, http.StatusNotFound, errors.New("no usable save"))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Session.State())
}

// GetExport handles the GET /export request.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Session.Export()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if _, err := w.Write(doc.Data); err != nil {
		s.logger.Error("Export response write failed", "err", err)
	}
}

// PostImport handles the POST /import request. The body is a save document.
func (s *Server) PostImport(w http.ResponseWriter, r *http.Request) {
	err := s.Session.Import(r.Context(), io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Session.State())
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidFormat, domain.KindFileReadFailed:
		return http.StatusBadRequest
	case domain.KindValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.LogError(s.logger, "Request failed", err)
	} else {
		s.logger.Debug("Request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(domain.KindOf(err))})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
