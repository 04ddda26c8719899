package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "njangitech"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	CreditTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "credits",
		Name:      "transitions_total",
		Help:      "Credit status transitions by target status.",
	}, []string{"status"})

	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "closed_total",
		Help:      "Sessions closed.",
	})

	PenaltiesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "penalties",
		Name:      "created_total",
		Help:      "Penalties created by type.",
	}, []string{"type"})

	LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "entries_total",
		Help:      "Ledger entries appended by type.",
	}, []string{"type"})

	InsufficientFunds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "funds",
		Name:      "insufficient_total",
		Help:      "Operations rejected for insufficient tontine balance.",
	}, []string{"operation"})
)
