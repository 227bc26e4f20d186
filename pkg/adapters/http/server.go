package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/paths"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps the payload accepted by POST /v1/sha1.
const maxBodyBytes = 64 << 20

// Finder defines the resolver operations exposed over HTTP.
type Finder interface {
	Find(ctx context.Context, file string, searchLocalPath bool) (string, error)
	FindPath(ctx context.Context, file string) (string, error)
	Fingerprint(ctx context.Context, file string) (domain.Fingerprint, error)
	FilePaths() []string
	SearchPathSuffixes() []string
}

// Server serves the pathfinder JSON API.
type Server struct {
	Finder   Finder
	Clock    clock.Clock
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics exposes the gatherer at GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithClock replaces the wall clock read by GET /v1/time.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		s.Clock = c
	}
}

// NewHandler creates a new HTTP handler for the finder.
func NewHandler(finder Finder, opts ...Option) http.Handler {
	server := &Server{
		Finder: finder,
		Clock:  clock.System{},
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.Logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/find", server.FindFile)
		r.Get("/path", server.FindFilePath)
		r.Get("/fingerprint", server.Fingerprint)
		r.Post("/sha1", server.SHA1)
		r.Get("/time", server.SystemTime)
		r.Get("/paths", server.SearchPaths)
	})
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Resolution is the response of the lookup endpoints.
type Resolution struct {
	File string `json:"file"`
	Path string `json:"path"`
}

// Digest is the response of POST /v1/sha1.
type Digest struct {
	Digest string `json:"digest"`
	Size   int64  `json:"size"`
}

// Time is the response of GET /v1/time.
type Time struct {
	ISO    string `json:"iso"`
	UnixNs int64  `json:"unix_ns"`
}

// SearchPaths is the response of GET /v1/paths.
type SearchPaths struct {
	FilePaths []string `json:"file_paths"`
	Suffixes  []string `json:"suffixes"`
	Delimiter string   `json:"delimiter"`
}

// FindFile handles the GET /v1/find request.
func (s *Server) FindFile(w http.ResponseWriter, r *http.Request) {
	var file string
	if err := runtime.BindQueryParameter("form", true, true, "file", r.URL.Query(), &file); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	local := true
	if err := runtime.BindQueryParameter("form", true, false, "local", r.URL.Query(), &local); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.Finder.Find(r.Context(), file, local)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, Resolution{File: file, Path: p})
}

// FindFilePath handles the GET /v1/path request.
func (s *Server) FindFilePath(w http.ResponseWriter, r *http.Request) {
	var file string
	if err := runtime.BindQueryParameter("form", true, true, "file", r.URL.Query(), &file); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.Finder.FindPath(r.Context(), file)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, Resolution{File: file, Path: p})
}

// Fingerprint handles the GET /v1/fingerprint request.
func (s *Server) Fingerprint(w http.ResponseWriter, r *http.Request) {
	var file string
	if err := runtime.BindQueryParameter("form", true, true, "file", r.URL.Query(), &file); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	fp, err := s.Finder.Fingerprint(r.Context(), file)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, fp)
}

// SHA1 handles the POST /v1/sha1 request. The raw body is hashed.
func (s *Server) SHA1(w http.ResponseWriter, r *http.Request) {
	sum, n, err := digest.SHA1Reader(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, Digest{Digest: sum, Size: n})
}

// SystemTime handles the GET /v1/time request.
func (s *Server) SystemTime(w http.ResponseWriter, r *http.Request) {
	now := s.Clock.Now()
	s.writeJSON(w, Time{ISO: clock.FormatISO(now), UnixNs: now.UnixNano()})
}

// SearchPaths handles the GET /v1/paths request.
func (s *Server) SearchPaths(w http.ResponseWriter, r *http.Request) {
	resp := SearchPaths{
		FilePaths: s.Finder.FilePaths(),
		Suffixes:  s.Finder.SearchPathSuffixes(),
		Delimiter: paths.PathDelimiter(),
	}
	if resp.FilePaths == nil {
		resp.FilePaths = []string{}
	}
	if resp.Suffixes == nil {
		resp.Suffixes = []string{}
	}
	s.writeJSON(w, resp)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, map[string]string{
		"app":         "pathfinder-http",
		"version":     strings.TrimSpace(pathfinder.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrEmptyPath):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		s.Logger.Error("Lookup failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		s.Logger.Error("Error response encode failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}
