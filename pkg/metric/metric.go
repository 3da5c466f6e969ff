// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all metrics for the Dutch pricing engine
type Metrics struct {
	registry *prometheus.Registry

	// Order book metrics
	OrdersRegistered prometheus.Counter
	OrdersRemoved    prometheus.Counter

	// Quote metrics
	QuotesServed  *prometheus.CounterVec
	QuoteLatency  prometheus.Histogram
	ActiveStreams prometheus.Gauge
}

// NewMetrics creates a new metrics instance on a private registry
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		OrdersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dutch",
			Name:      "orders_registered_total",
			Help:      "Total number of Dutch orders registered",
		}),
		OrdersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dutch",
			Name:      "orders_removed_total",
			Help:      "Total number of Dutch orders removed",
		}),
		QuotesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dutch",
			Name:      "quotes_served_total",
			Help:      "Total number of quotes served by status",
		}, []string{"status"}),
		QuoteLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dutch",
			Name:      "quote_latency_seconds",
			Help:      "Time to resolve a quote",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		ActiveStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dutch",
			Name:      "active_quote_streams",
			Help:      "Number of open quote stream connections",
		}),
	}

	collectors := []prometheus.Collector{
		m.OrdersRegistered,
		m.OrdersRemoved,
		m.QuotesServed,
		m.QuoteLatency,
		m.ActiveStreams,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler returns an HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
