// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package httpapi serves the classifier over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/metrics"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8645"

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

// Server exposes a Classifier as a JSON API.
type Server struct {
	classifier *classify.Classifier
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// New creates a Server for c.
func New(c *classify.Classifier, opts ...Option) *Server {
	s := &Server{classifier: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.GET("/healthz", s.health)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.POST("/classify", s.classify)
	v1.GET("/settings", s.getSettings)
	v1.PATCH("/settings", s.patchSettings)
	v1.POST("/prune", s.prune)
	v1.DELETE("/store", s.reset)
	v1.GET("/stats", s.stats)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http api listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("http api stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
