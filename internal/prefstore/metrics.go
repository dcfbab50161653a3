package prefstore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once
	writesTotal *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altaviva",
			Subsystem: "preferences",
			Name:      "writes_total",
			Help:      "Preference writes by store and outcome",
		}, []string{"store", "status"})
	})
}

func recordWrite(store string, err error) {
	initMetrics()
	status := "ok"
	if err != nil {
		status = "error"
	}
	writesTotal.WithLabelValues(store, status).Inc()
}
