// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tabsplit"

// Metrics groups the collectors. All methods are safe for concurrent use.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	allocations *prometheus.CounterVec
	billItems   prometheus.Histogram
	billPeople  prometheus.Histogram
	extractions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Bills split, by allocation mode.",
		}, []string{"mode"}),
		billItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_items",
			Help:      "Number of line items per split bill.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50},
		}),
		billPeople: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_participants",
			Help:      "Number of participants per split bill.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 20},
		}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_extractions_total",
			Help:      "Receipt extraction attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.allocations, m.billItems, m.billPeople, m.extractions)
	return m
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveAllocation records one split bill.
func (m *Metrics) ObserveAllocation(mode string, items, participants int) {
	m.allocations.WithLabelValues(mode).Inc()
	m.billItems.Observe(float64(items))
	m.billPeople.Observe(float64(participants))
}

// ObserveExtraction records a receipt extraction attempt.
func (m *Metrics) ObserveExtraction(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.extractions.WithLabelValues(outcome).Inc()
}
