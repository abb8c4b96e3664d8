package ollama

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llmm",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of calls made to the Ollama daemon",
		},
		[]string{"op", "status"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "llmm",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls to the Ollama daemon in seconds, including streamed bodies",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"op"},
	)

	upstreamStreamLines = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llmm",
			Subsystem: "upstream",
			Name:      "stream_lines_total",
			Help:      "Lines relayed from streamed daemon responses",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal, upstreamRequestDuration, upstreamStreamLines)
}

func observeRequest(op, status string, start time.Time) {
	upstreamRequestsTotal.WithLabelValues(op, status).Inc()
	upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func statusLabel(code int) string { return strconv.Itoa(code) }
