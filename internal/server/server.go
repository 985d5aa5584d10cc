// Package server exposes the capture/restore toolchain over HTTP:
// validation, layout, and preview rendering of posted documents, plus a
// named document store. Rendering and validation results are cached by
// document content hash.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/snapgraph/snapgraph/pkg/cache"
	"github.com/snapgraph/snapgraph/pkg/restore"
	"github.com/snapgraph/snapgraph/pkg/store"
	"github.com/snapgraph/snapgraph/pkg/validate"
)

// maxBodyBytes bounds posted documents. Real-world documents are a few
// hundred kilobytes; anything near this limit is suspect.
const maxBodyBytes = 16 << 20

// cacheTTL is how long derived artifacts stay cached.
const cacheTTL = 24 * time.Hour

// Server wires the toolchain behind an HTTP API.
type Server struct {
	store     store.Store
	cache     cache.Cache
	validator *validate.Validator
	restorer  *restore.Restorer
	logger    *log.Logger
}

// New creates a Server. cache may be a NullCache to disable caching.
func New(st store.Store, c cache.Cache, v *validate.Validator, r *restore.Restorer, logger *log.Logger) *Server {
	return &Server{store: st, cache: c, validator: v, restorer: r, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Put("/{name}", s.handlePut)
			r.Get("/{name}", s.handleGet)
			r.Delete("/{name}", s.handleDelete)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
