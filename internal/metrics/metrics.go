// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package metrics exposes classifier and HTTP activity as Prometheus
// metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/dedup"
)

const namespace = "seen"

// Metrics implements classify.Observer and records HTTP request metrics.
type Metrics struct {
	classifications *prometheus.CounterVec
	saves           *prometheus.CounterVec
	pruned          prometheus.Counter
	resets          prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ classify.Observer = (*Metrics)(nil)

// New registers the metrics with reg. records reports the current number
// of stored records and is sampled at scrape time; it may be nil.
func New(reg prometheus.Registerer, records func() int) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Texts judged, by verdict.",
		}, []string{"verdict"}),
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_saves_total",
			Help:      "Store persistence attempts, by result.",
		}, []string{"result"}),
		pruned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_records_total",
			Help:      "Records dropped for falling outside the retention window.",
		}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_resets_total",
			Help:      "Times the whole store was cleared.",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP API requests.",
		}, []string{"method", "path", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP API request duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "path"}),
	}

	// Pre-create verdict series so they read 0 before the first request.
	for _, v := range dedup.Verdicts() {
		m.classifications.WithLabelValues(string(v))
	}

	if records != nil {
		f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Records currently held in the store.",
		}, func() float64 { return float64(records()) })
	}
	return m
}

// Classified implements classify.Observer.
func (m *Metrics) Classified(v dedup.Verdict) {
	m.classifications.WithLabelValues(string(v)).Inc()
}

// Saved implements classify.Observer.
func (m *Metrics) Saved(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(result).Inc()
}

// Pruned implements classify.Observer.
func (m *Metrics) Pruned(removed int) {
	m.pruned.Add(float64(removed))
}

// Reset implements classify.Observer.
func (m *Metrics) Reset() {
	m.resets.Inc()
}

// Middleware returns a gin middleware that counts and times requests.
// Requests are labeled by route template, so path parameters do not
// create new series.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
