// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/httpapi"
	"github.com/davetashner/seen/internal/metrics"
)

// Serve command flags.
var (
	serveAddr          string
	servePruneInterval time.Duration
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier over HTTP",
	Long: `Start a JSON API for browser extensions and other hosts.

Routes:
  POST   /v1/classify   {text, origin_id, site}
  GET    /v1/settings
  PATCH  /v1/settings   {retention, scope, similarity, min_length}
  POST   /v1/prune
  DELETE /v1/store
  GET    /v1/stats
  GET    /healthz
  GET    /metrics       Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", httpapi.DefaultAddr, "listen address")
	serveCmd.Flags().DurationVar(&servePruneInterval, "prune-interval", time.Hour, "how often expired records are pruned (0 disables)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var c *classify.Classifier
	m := metrics.New(reg, func() int { return c.Stats().Records })

	eng, err := openEngine(ctx, classify.WithObserver(m))
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck // state is saved per request
	c = eng.classifier

	if servePruneInterval > 0 {
		go pruneLoop(ctx, c, servePruneInterval)
	}

	srv := httpapi.New(c, httpapi.WithMetrics(m, reg))
	if err := srv.ListenAndServe(ctx, serveAddr); err != nil {
		return exitError(ExitTotalFailure, "%v", err)
	}
	return nil
}

// pruneLoop prunes on every tick until ctx is done.
func pruneLoop(ctx context.Context, c *classify.Classifier, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := c.Prune(ctx)
			if err != nil {
				slog.Warn("scheduled prune failed", "error", err)
				continue
			}
			slog.Debug("scheduled prune", "removed", removed)
		}
	}
}
