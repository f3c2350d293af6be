// Package server exposes the fixer over HTTP.
//
// Routes:
//   - POST /api/v1/fix       repair a document
//   - POST /api/v1/validate  report problems without repairing
//   - GET  /health           liveness
//   - GET  /metrics          Prometheus metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"yaml-fixer/internal/config"
	"yaml-fixer/internal/fixer"
)

const (
	serviceName     = "yaml-fixer"
	shutdownTimeout = 5 * time.Second
)

// Server serves fix and validate requests.
type Server struct {
	fixer    *fixer.Fixer
	defaults fixer.Options
	cfg      config.ServerConfig
	version  string
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	engine   *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New builds a server. defaults are the fixer options used when a request
// does not override them.
func New(f *fixer.Fixer, defaults fixer.Options, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		fixer:    f,
		defaults: defaults,
		cfg:      cfg,
		version:  "dev",
		log:      zap.NewNop(),
		registry: prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.metrics = newMetrics(s.registry)
	s.engine = s.routes()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery(), s.requestID(), s.observe(), s.limitBody())

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.POST("/fix", s.fix)
	api.POST("/validate", s.validate)

	return r
}

// Run listens on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to serve on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	<-errCh

	return nil
}

func (s *Server) timeout() time.Duration {
	if s.cfg.TimeoutSeconds <= 0 {
		return 0
	}

	return time.Duration(s.cfg.TimeoutSeconds) * time.Second
}
