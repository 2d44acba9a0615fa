// Package metrics holds the Prometheus series exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grestaurants"

var (
	// RequestsTotal counts HTTP requests. Labels: method, route, status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// RequestDuration measures handler latency. Labels: method, route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP handler latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// FailuresTotal counts failed operations by error kind.
	FailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "failures_total",
		Help:      "Failed operations by error kind.",
	}, []string{"kind"})

	// LiveSubscribers is the number of open review feed websockets.
	LiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "review_subscribers",
		Help:      "Open review feed connections.",
	})
)
