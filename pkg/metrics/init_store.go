package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStoreMetrics() {
	r.TransactionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_transactions_total",
			Help: "Transactions begun, committed and rolled back",
		},
		[]string{"outcome"},
	)

	r.TransactionDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_transaction_depth",
			Help: "Number of currently open nested transactions",
		},
	)

	r.MaxDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_transaction_depth_max",
			Help: "Deepest transaction nesting seen in the session",
		},
	)

	r.StoreEntries = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_store_entries",
			Help: "Entries held across all layers, tombstones included",
		},
	)

	r.StoreTombstones = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_store_tombstones",
			Help: "Tombstone entries held across all layers",
		},
	)

	r.StoreVisibleKeys = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_store_visible_keys",
			Help: "Keys whose effective value exists",
		},
	)
}
