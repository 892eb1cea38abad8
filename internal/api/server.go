// Package api serves the label settings over HTTP for hued and the remote
// client.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
)

// Headers shared with the client
const (
	UserHeader      = "X-Hue-User"
	RequestIDHeader = "X-Request-ID"
)

// Server routes API requests to the services
type Server struct {
	router   *mux.Router
	labels   labelservice.Service
	projects projectservice.Service
	sessions sessionservice.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry exposes metrics through an existing registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer builds the router
func NewServer(labels labelservice.Service, projects projectservice.Service, sessions sessionservice.Service, opts ...Option) *Server {
	s := &Server{
		labels:   labels,
		projects: projects,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.withRequestID, s.withLogging)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	const projectPath = "/api/workspaces/{workspace}/projects/{project}"
	r.HandleFunc(projectPath, s.getProject).Methods(http.MethodGet)

	p := r.PathPrefix(projectPath).Subrouter()
	p.HandleFunc("/access", s.getAccess).Methods(http.MethodGet)
	p.HandleFunc("/labels", s.listLabels).Methods(http.MethodGet)
	p.HandleFunc("/labels", s.createLabel).Methods(http.MethodPost)
	// Registered before {label} so "tree" is not taken for an ID
	p.HandleFunc("/labels/tree", s.labelTree).Methods(http.MethodGet)
	p.HandleFunc("/labels/{label}", s.updateLabel).Methods(http.MethodPatch)
	p.HandleFunc("/labels/{label}", s.deleteLabel).Methods(http.MethodDelete)
	p.HandleFunc("/labels/{label}/children", s.addChildren).Methods(http.MethodPost)

	// mux skips middleware when nothing matches, so these carry it themselves
	r.NotFoundHandler = s.withRequestID(s.withLogging(http.HandlerFunc(s.notFound)))
	r.MethodNotAllowedHandler = s.withRequestID(s.withLogging(http.HandlerFunc(s.methodNotAllowed)))

	s.router = r
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorBody{
		Code:    CodeNotFound,
		Message: "no route for " + r.URL.Path,
	}})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: ErrorBody{
		Code:    CodeNotAllowed,
		Message: r.Method + " is not allowed on " + r.URL.Path,
	}})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the request ID attached by the server, "" outside a request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID reuses an incoming X-Request-ID or generates one
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		elapsed := time.Since(start)
		s.metrics.observe(route, r.Method, rec.status, elapsed)

		s.logger.Info("request",
			"request_id", RequestID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// routeTemplate keeps metric labels bounded by using the matched pattern
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
