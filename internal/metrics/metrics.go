// Package metrics exposes Prometheus collectors for the messaging pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	messagesDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_dispatched_total",
			Help: "Total number of provider dispatch attempts",
		},
		[]string{"channel", "provider", "status"},
	)

	queueItemsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_items_processed_total",
			Help: "Total number of queued messages moved to a terminal state",
		},
		[]string{"status"},
	)

	queueDueBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "queue_due_backlog",
			Help: "Number of due items observed at the start of a processor tick",
		},
	)

	processorTicksSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "processor_ticks_skipped_total",
			Help: "Ticks skipped because a previous run was still executing",
		},
	)

	batchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_items_total",
			Help: "Per-item outcomes of batch operations (bulk upload, bulk send, birthday)",
		},
		[]string{"operation", "status"},
	)
)

// RecordDispatch records one provider call outcome.
func RecordDispatch(channel, provider string, success bool) {
	status := "failed"
	if success {
		status = "sent"
	}
	messagesDispatchedTotal.WithLabelValues(channel, provider, status).Inc()
}

// RecordQueueItem records a queue item reaching a terminal state.
func RecordQueueItem(status string) {
	queueItemsProcessedTotal.WithLabelValues(status).Inc()
}

// SetDueBacklog records the due backlog observed by a processor tick.
func SetDueBacklog(n int) {
	queueDueBacklog.Set(float64(n))
}

// RecordSkippedTick records a tick suppressed by the re-entrancy guard.
func RecordSkippedTick() {
	processorTicksSkippedTotal.Inc()
}

// RecordBatchItem records one item of a batch operation.
func RecordBatchItem(operation string, success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	batchItemsTotal.WithLabelValues(operation, status).Inc()
}

// Middleware records request counts and durations for gin routes.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
