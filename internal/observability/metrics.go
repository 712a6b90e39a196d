package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	bridgeCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mayactl",
			Subsystem: "bridge",
			Name:      "commands_total",
			Help:      "Total tool commands dispatched to the Maya command port.",
		},
		[]string{"tool", "outcome"},
	)
	bridgeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mayactl",
			Subsystem: "bridge",
			Name:      "command_duration_seconds",
			Help:      "Tool command duration in seconds, including retries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tool", "outcome"},
	)
	bridgeReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mayactl",
			Subsystem: "bridge",
			Name:      "reconnects_total",
			Help:      "Command-port reconnects after a faulted connection.",
		},
	)
	bridgeRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mayactl",
			Subsystem: "bridge",
			Name:      "command_retries_total",
			Help:      "Command sends retried after a transport fault or empty reply.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mayactl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Ops endpoint requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mayactl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Ops endpoint request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			bridgeCommands, bridgeDuration, bridgeReconnects, bridgeRetries,
			httpRequests, httpDuration,
		)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordToolCommand(tool, outcome string, duration time.Duration) {
	RegisterMetrics()
	bridgeCommands.WithLabelValues(tool, outcome).Inc()
	bridgeDuration.WithLabelValues(tool, outcome).Observe(duration.Seconds())
}

func RecordReconnect() {
	RegisterMetrics()
	bridgeReconnects.Inc()
}

func RecordRetry() {
	RegisterMetrics()
	bridgeRetries.Inc()
}
