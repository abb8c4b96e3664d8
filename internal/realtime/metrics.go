package realtime

import "github.com/prometheus/client_golang/prometheus"

var (
	connectionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "llmm",
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Open WebSocket connections",
	})

	eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "llmm",
		Subsystem: "realtime",
		Name:      "events_total",
		Help:      "Client events received, by event name",
	}, []string{"event"})
)

func init() {
	prometheus.MustRegister(connectionsGauge, eventsTotal)
}

// eventLabel keeps arbitrary client event names out of the label set.
func eventLabel(event string) string {
	if event == EventRefreshModels {
		return event
	}
	return "other"
}
