// Package telemetry exposes Prometheus counters for the delivery pipeline.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for mail submission and delivery.
type Metrics struct {
	// Deliveries counts delivery attempts by provider and outcome.
	Deliveries *prometheus.CounterVec

	// Failovers counts cursor advances by the provider pair involved.
	Failovers *prometheus.CounterVec

	// Submissions counts mail submissions by result.
	Submissions *prometheus.CounterVec
}

// NewMetrics creates and registers the delivery metrics on the default
// registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "email_backend"
	}

	return &Metrics{
		Deliveries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_total",
				Help:      "Total delivery attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		Failovers: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failovers_total",
				Help:      "Total provider failovers by origin and destination provider",
			},
			[]string{"from", "to"},
		),
		Submissions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total mail submissions by result",
			},
			[]string{"status"},
		),
	}
}

// Relay is the global instance used by the router and the HTTP handlers.
// It is nil until Init runs; callers nil-check it before incrementing.
var Relay *Metrics

// Init initializes the global relay metrics instance.
func Init(namespace string) *Metrics {
	Relay = NewMetrics(namespace)
	return Relay
}
