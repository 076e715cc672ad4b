// Package server exposes the solve pipeline over HTTP.
//
// The API is a small JSON surface on top of [pipeline.Runner]:
//
//	GET  /healthz           liveness probe
//	POST /v1/solve          run the full pipeline on an inline catalog
//	POST /v1/render         assemble a catalog and return the image as PNG
//	GET  /v1/pattern        the built-in search pattern as text
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mosaickit/mosaic/pkg/pipeline"
)

const (
	defaultAddr         = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second
	shutdownGrace       = 10 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// Runner executes solve requests. Required.
	Runner *pipeline.Runner

	// Logger receives request and lifecycle logs.
	Logger *log.Logger

	// RequestTimeout bounds each request (default 60s).
	RequestTimeout time.Duration
}

// Server serves the solve API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds a server from opts.
func New(opts Options) (*Server, error) {
	if opts.Runner == nil {
		return nil, fmt.Errorf("server: runner is required")
	}
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultWriteTimeout
	}

	s := &Server{opts: opts}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/render", s.handleRender)
		r.Get("/pattern", s.handlePattern)
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: s.opts.RequestTimeout + time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("server listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.opts.Logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.opts.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
