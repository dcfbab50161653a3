package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce    sync.Once
	activeSessions prometheus.Gauge
	eventsTotal    *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "altaviva",
			Subsystem: "live",
			Name:      "sessions",
			Help:      "Open live sessions",
		})
		eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altaviva",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Live events by type and outcome",
		}, []string{"type", "status"})
	})
}

func recordEvent(eventType EventType, err error) {
	initMetrics()
	status := "ok"
	label := string(eventType)
	if err != nil {
		status = "error"
		switch eventType {
		case EventScroll, EventToggleTheme, EventMenu, EventSelect:
		default:
			label = "unknown"
		}
	}
	eventsTotal.WithLabelValues(label, status).Inc()
}
