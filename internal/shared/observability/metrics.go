package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parsecheck_parsing_seconds",
		Help:    "Time spent parsing a single source artifact.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parsecheck_sessions_active",
		Help: "Number of parse sessions currently open.",
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parsecheck_parse_failures_total",
		Help: "Total number of parse calls rejected by the error check.",
	})

	SessionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parsecheck_session_failures_total",
		Help: "Total number of parse calls whose parse stage could not run.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parsecheck_diagnostics_total",
		Help: "Total number of diagnostics collected, by severity.",
	}, []string{"severity"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parsecheck_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RevalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parsecheck_revalidations_total",
		Help: "Total number of watcher-triggered re-validations.",
	})
)
