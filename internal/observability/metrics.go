package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for a ledger run.
// Each instance owns its registry so runs (and tests) never share counters.
type Metrics struct {
	registry *prometheus.Registry

	// --- Engine ---
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	ApplyDuration        *prometheus.HistogramVec

	// --- Ingestion ---
	RecordsMalformed prometheus.Counter

	// --- State ---
	Clients        prometheus.Gauge
	ClientsLocked  prometheus.Gauge
	HistoryEntries prometheus.Gauge
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	latencyBuckets := []float64{
		0.0000001, 0.00000025, 0.0000005, 0.000001, 0.0000025,
		0.000005, 0.00001, 0.000025, 0.0001, 0.001,
	}

	return &Metrics{
		registry: reg,

		TransactionsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txledger_transactions_applied_total",
			Help: "Transactions applied by the engine",
		}, []string{"type"}),

		TransactionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txledger_transactions_rejected_total",
			Help: "Transactions rejected by the engine",
		}, []string{"type", "reason"}),

		ApplyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txledger_apply_duration_seconds",
			Help:    "Time to apply a single transaction",
			Buckets: latencyBuckets,
		}, []string{"type"}),

		RecordsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "txledger_records_malformed_total",
			Help: "Input records dropped before reaching the engine",
		}),

		Clients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txledger_clients",
			Help: "Known client accounts",
		}),

		ClientsLocked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txledger_clients_locked",
			Help: "Client accounts locked by a chargeback",
		}),

		HistoryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txledger_history_entries",
			Help: "Retained deposit and withdrawal entries",
		}),
	}
}

// Registry exposes the underlying gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetStateMetrics updates the state gauges.
func (m *Metrics) SetStateMetrics(clients, locked, history int) {
	m.Clients.Set(float64(clients))
	m.ClientsLocked.Set(float64(locked))
	m.HistoryEntries.Set(float64(history))
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
