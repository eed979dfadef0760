package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Command status label values
const (
	StatusOK            = "ok"
	StatusNoTransaction = "no_transaction"
	StatusMalformed     = "malformed"
)

// Transaction outcome label values
const (
	OutcomeBegun      = "begun"
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

// Registry holds all metrics for a store session
type Registry struct {
	// Command Metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Transaction Metrics
	TransactionsTotal *prometheus.CounterVec
	TransactionDepth  prometheus.Gauge
	MaxDepth          prometheus.Gauge

	// Store Metrics
	StoreEntries     prometheus.Gauge
	StoreTombstones  prometheus.Gauge
	StoreVisibleKeys prometheus.Gauge

	registry *prometheus.Registry
	maxDepth int
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initCommandMetrics()
	r.initStoreMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
