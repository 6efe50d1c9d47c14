// Package httpapi exposes validation and composition storage over HTTP.
//
// Routes:
//
//	POST   /v1/validate              validate a spec document
//	GET    /v1/compositions          list stored compositions
//	POST   /v1/compositions          store a new composition
//	GET    /v1/compositions/{id}     fetch one composition
//	PUT    /v1/compositions/{id}     replace one composition
//	DELETE /v1/compositions/{id}     delete one composition
//	GET    /v1/compositions/{id}/diagram   render the structure diagram
//	GET    /healthz                  liveness probe
package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reelkit/reelkit/pkg/cache"
	"github.com/reelkit/reelkit/pkg/registry"
	"github.com/reelkit/reelkit/pkg/store"
)

// verdictTTL bounds how long cached validation verdicts stay fresh.
// Verdicts depend on the registered plugin catalog, which can change
// between server restarts.
const verdictTTL = time.Hour

// Server handles the HTTP API.
type Server struct {
	router     chi.Router
	store      store.Store
	cache      cache.Cache
	keyer      cache.Keyer
	registries *registry.Set
	logger     *log.Logger
}

// Options configures a server. Zero values get safe defaults: a memory
// store, a null cache, and the built-in registries.
type Options struct {
	Store      store.Store
	Cache      cache.Cache
	Keyer      cache.Keyer
	Registries *registry.Set
	Logger     *log.Logger
}

// NewServer wires routes and middleware.
func NewServer(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Registries == nil {
		opts.Registries = registry.NewSet()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		store:      opts.Store,
		cache:      opts.Cache,
		keyer:      opts.Keyer,
		registries: opts.Registries,
		logger:     opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Route("/compositions", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Put("/", s.handleUpdate)
				r.Delete("/", s.handleDelete)
				r.Get("/diagram", s.handleDiagram)
			})
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("api listening", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

// requestLogger logs one line per request with latency and status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
