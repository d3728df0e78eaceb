// Package api serves layouts over HTTP.
//
// Routes:
//
//	GET  /health           liveness and version
//	POST /layout           lay out the record array in the body
//	GET  /layout           lay out the records of the configured source
//	POST /layouts          lay out and store a snapshot (201)
//	GET  /layouts          list snapshots, newest first
//	GET  /layouts/{id}     fetch one snapshot
//
// The layout routes accept ?direction=TB|LR, ?ids=composite|raw and
// ?refresh=true. Errors are answered as {"code": "...", "error": "..."}.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/appgraph/pkg/pipeline"
	"github.com/matzehuels/appgraph/pkg/source"
	"github.com/matzehuels/appgraph/pkg/store"
)

// MaxBodyBytes bounds the size of a posted record array.
const MaxBodyBytes = 8 << 20

// Config holds the server's collaborators. Runner and Store are required;
// Source is optional and enables GET /layout.
type Config struct {
	Runner   *pipeline.Runner
	Store    store.Store
	Source   source.Source
	Defaults pipeline.Options
	Logger   *log.Logger
}

// Server is the HTTP front end of the pipeline. It is safe for concurrent
// use; every request runs its own pipeline invocation.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	source   source.Source
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		source:   cfg.Source,
		defaults: cfg.Defaults,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/layout", s.handleLayoutRecords)
	r.Get("/layout", s.handleLayoutSource)
	r.Route("/layouts", func(r chi.Router) {
		r.Post("/", s.handleSaveSnapshot)
		r.Get("/", s.handleListSnapshots)
		r.Get("/{id}", s.handleGetSnapshot)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
