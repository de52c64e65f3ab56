package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type EventMetrics struct {
	Published       *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
	RelayRecovered  prometheus.Counter
}

func NewEventMetrics() *EventMetrics {
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quickcommerce",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Events published to the bus.",
	}, []string{"topic"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quickcommerce",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Publish attempts that failed and were left for the relay.",
	}, []string{"topic"})
	recovered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quickcommerce",
		Subsystem: "events",
		Name:      "relay_recovered_total",
		Help:      "Pending outbox records the relay eventually published.",
	})

	prometheus.MustRegister(published, failures, recovered)
	return &EventMetrics{Published: published, PublishFailures: failures, RelayRecovered: recovered}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
