// Package metrics provides Prometheus metrics for the shell.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Dispatch metrics
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vshell_commands_total",
			Help: "Total number of dispatched command lines",
		},
		[]string{"verb", "outcome"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vshell_command_duration_seconds",
			Help:    "Command handler duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verb"},
	)

	// Session metrics
	sessionDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vshell_session_depth",
			Help: "Number of sessions currently on the nesting stack",
		},
	)

	// Persistence metrics
	snapshotOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vshell_snapshot_operations_total",
			Help: "Total number of snapshot save and load operations",
		},
		[]string{"op", "status"},
	)

	snapshotBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vshell_snapshot_bytes",
			Help: "Size of the last saved or loaded snapshot in bytes",
		},
	)
)

// Outcome labels for RecordCommand.
const (
	OutcomeOK        = "ok"
	OutcomeContinue  = "continue"
	OutcomeTerminate = "terminate"
	OutcomeNest      = "nest"
	OutcomeParse     = "parse_error"
	OutcomeMiss      = "miss"
	OutcomeError     = "error"
)

// RecordCommand records a dispatched command line.
func RecordCommand(verb, outcome string, duration time.Duration) {
	commandsTotal.WithLabelValues(verb, outcome).Inc()
	if duration > 0 {
		commandDuration.WithLabelValues(verb).Observe(duration.Seconds())
	}
}

// SetSessionDepth updates the nesting depth gauge.
func SetSessionDepth(depth int) {
	sessionDepth.Set(float64(depth))
}

// RecordSnapshot records a save or load operation.
func RecordSnapshot(op string, size int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	} else {
		snapshotBytes.Set(float64(size))
	}
	snapshotOperations.WithLabelValues(op, status).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
