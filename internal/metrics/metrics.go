// Package metrics defines the Prometheus collectors of the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bozorlik"

// Metrics groups the collectors updated by the service and the ledger.
type Metrics struct {
	Messages       *prometheus.CounterVec
	OracleFailures *prometheus.CounterVec
	ListsCreated   prometheus.Counter
	ListsCompleted prometheus.Counter
	LedgerErrors   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Processed user messages by outcome.",
		}, []string{"kind"}),
		OracleFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_failures_total",
			Help:      "Failed language model calls by call type.",
		}, []string{"call"}),
		ListsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lists_created_total",
			Help:      "Shopping lists created from user messages.",
		}),
		ListsCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lists_completed_total",
			Help:      "Shopping lists bought completely and archived.",
		}),
		LedgerErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_errors_total",
			Help:      "Expense ledger failures by operation.",
		}, []string{"op"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Users with a shopping list in progress.",
		}),
	}
}

// Handler serves the collectors registered with g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
