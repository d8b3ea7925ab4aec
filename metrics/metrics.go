package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the ledger's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookie",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	entriesComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "entries_computed_total",
			Help:      "Entries expanded and priced, by category.",
		},
		[]string{"category"},
	)

	validationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "validation_errors_total",
			Help:      "Rejected entries, by kind.",
		},
		[]string{"kind"},
	)

	ceilingWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "ceiling_warnings_total",
			Help:      "Entries that would push a combo over the per-combo ceiling.",
		},
	)

	recomputeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "recompute_runs_total",
			Help:      "Batch recomputations, by outcome.",
		},
		[]string{"success"},
	)

	settlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "settlements_total",
			Help:      "Draw period settlements, by outcome.",
		},
		[]string{"success"},
	)

	summaryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bookie",
			Subsystem: "ledger",
			Name:      "summary_duration_seconds",
			Help:      "Time spent computing summaries.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		entriesComputed,
		validationErrors,
		ceilingWarnings,
		recomputeRuns,
		settlements,
		summaryDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func RecordEntryComputed(category string) {
	entriesComputed.WithLabelValues(category).Inc()
}

func RecordValidationError(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	validationErrors.WithLabelValues(kind).Inc()
}

func RecordCeilingWarning() {
	ceilingWarnings.Inc()
}

func RecordRecompute(success bool) {
	recomputeRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordSettlement(success bool) {
	settlements.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// ObserveSummary records how long a summary computation took.
func ObserveSummary(d time.Duration) {
	summaryDuration.Observe(d.Seconds())
}
