package metrics

import (
	"time"

	"github.com/dd0wney/cluso-kv/pkg/storage"
)

// RecordCommand records an interpreted command with its duration
func (r *Registry) RecordCommand(command, status string, duration time.Duration) {
	r.CommandsTotal.WithLabelValues(command, status).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordTransaction records a transaction lifecycle event
func (r *Registry) RecordTransaction(outcome string) {
	r.TransactionsTotal.WithLabelValues(outcome).Inc()
}

// UpdateStoreMetrics refreshes the store gauges from a statistics snapshot
func (r *Registry) UpdateStoreMetrics(stats storage.Statistics) {
	r.TransactionDepth.Set(float64(stats.Depth))
	r.StoreEntries.Set(float64(stats.Entries))
	r.StoreTombstones.Set(float64(stats.Tombstones))
	r.StoreVisibleKeys.Set(float64(stats.VisibleKeys))

	r.mu.Lock()
	defer r.mu.Unlock()
	if stats.Depth > r.maxDepth {
		r.maxDepth = stats.Depth
		r.MaxDepth.Set(float64(stats.Depth))
	}
}
