// Package httpapi serves bubbles over HTTP.
//
//	GET  /api/bubble/{id}         encoded bubble as text/plain
//	POST /api/bubble/{id}         {"Bubble": "<encoded>"}, replies {}
//	GET  /api/bubble/{id}/render  tagged spans of the bubble text
//	GET  /health
//
// Anything else is served from an optional static directory.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"bubblesea/internal/ports"
)

// Backend is what the server reads from and writes to
type Backend interface {
	ports.RemoteSea
	ports.BubbleSink
}

// Router creates and configures the HTTP router
type Router struct {
	backend     Backend
	logger      *zap.Logger
	staticDir   string
	corsOrigins []string
}

// Option configures a Router
type Option func(*Router)

// WithStaticDir serves files from dir for every non-API path
func WithStaticDir(dir string) Option {
	return func(rt *Router) {
		rt.staticDir = dir
	}
}

// WithCORSOrigins allows browsers on origins to call the API
func WithCORSOrigins(origins ...string) Option {
	return func(rt *Router) {
		rt.corsOrigins = origins
	}
}

// NewRouter creates a new router instance
func NewRouter(backend Backend, logger *zap.Logger, opts ...Option) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Router{backend: backend, logger: logger}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.logger))

	if len(rt.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	h := &bubbleHandler{backend: rt.backend, logger: rt.logger}
	router.Route("/api/bubble/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/", h.store)
		r.Get("/render", h.render)
	})

	if rt.staticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(rt.staticDir)))
	}

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, rt.logger, http.StatusOK, map[string]string{"status": "ok"})
}
