package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "matchroom"

// Metrics bundles the server's prometheus collectors around a private
// registry so tests can create as many instances as they need.
type Metrics struct {
	Registry *prometheus.Registry

	ConnectedClients prometheus.Gauge
	OpenMatches      prometheus.Gauge
	MovesTotal       prometheus.Counter
	MatchesFinished  *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	metrics := &Metrics{
		Registry: registry,

		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of clients currently registered.",
		}),
		OpenMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_matches",
			Help:      "Number of matches waiting for a second player.",
		}),
		MovesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Accepted moves across all matches.",
		}),
		MatchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Finished matches by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		metrics.ConnectedClients,
		metrics.OpenMatches,
		metrics.MovesTotal,
		metrics.MatchesFinished,
	)

	return metrics
}
