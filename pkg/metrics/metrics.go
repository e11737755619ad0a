// Package metrics exposes the Prometheus collectors for the faucet engine.
//
// Labels are kept to small closed sets (request kind, purchase status) so
// cardinality stays bounded. All collectors are safe for concurrent use and
// are served by the ops HTTP server on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SendsTotal counts completed faucet sends by request kind.
	SendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_sends_total",
			Help: "Total number of successful asset/btc sends.",
		},
		[]string{"kind"},
	)

	// SendFailuresTotal counts send attempts rejected by the node.
	SendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_send_failures_total",
			Help: "Total number of failed asset/btc sends.",
		},
		[]string{"kind"},
	)

	// PurchaseTransitionsTotal counts purchase transitions by terminal status.
	PurchaseTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_purchase_transitions_total",
			Help: "Total number of purchase status transitions.",
		},
		[]string{"status"},
	)

	// ReconcilePassesTotal counts completed reconciliation passes.
	ReconcilePassesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "faucet_reconcile_passes_total",
			Help: "Total number of invoice reconciliation passes.",
		},
	)
)

func init() {
	prometheus.MustRegister(SendsTotal, SendFailuresTotal, PurchaseTransitionsTotal, ReconcilePassesTotal)
}
