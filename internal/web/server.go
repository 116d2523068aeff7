// Package web serves the technical debt dashboard over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	app     *dashboard.App
	metrics *Metrics
	cfg     *contract.Config
	baseCtx context.Context // Outlives requests; bounds the simulated initial load
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *contract.Config, app *dashboard.App, metrics *Metrics) *Server {
	router := chi.NewRouter()

	s := &Server{
		Server: &http.Server{
			Addr:              cfg.ServeAddr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		app:     app,
		metrics: metrics,
		cfg:     cfg,
		baseCtx: ctx,
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(metrics.Middleware)
	router.Use(RecoverMiddleware)

	// Health check and metrics
	router.Get("/healthz", handleHealth)
	router.Handle("/metrics", metrics.Handler())

	// Pages
	router.Get("/", s.handleLanding)
	router.Post("/enter", s.handleEnter)
	router.Post("/back", s.handleBack)
	router.Post("/dismiss", s.handleDismiss)
	router.Get("/dashboard", s.handleDashboard)
	router.Post("/upload", s.handleUpload)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleAPIReport)
		r.Get("/files", s.handleAPIFiles)
		r.Get("/folders", s.handleAPIFolders)
	})

	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", s.Addr))
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shutdown server gracefully")
	}
	logger.Info("Server shutdown complete")
	return nil
}
