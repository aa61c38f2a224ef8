package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Entity store operation counts
	StoreOpCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_count",
			Help: "Total number of entity store operations",
		},
		[]string{"entity", "operation", "result"}, // result: ok, not_found, error
	)

	// Drag mutation counts
	DragMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drag_mutation_count",
			Help: "Total number of task date mutations applied by drag sessions",
		},
		[]string{"mode"}, // mode: move, resize-start, resize-end
	)

	// Connected SSE clients
	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connected_clients",
			Help: "Number of currently connected SSE clients",
		},
	)
)

// RecordHTTPRequest records an HTTP request duration.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordStoreOp records an entity store operation result.
func RecordStoreOp(entity, operation, result string) {
	StoreOpCount.WithLabelValues(entity, operation, result).Inc()
}

// RecordDragMutation records an applied drag mutation.
func RecordDragMutation(mode string) {
	DragMutationCount.WithLabelValues(mode).Inc()
}
