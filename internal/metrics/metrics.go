// Package metrics holds the Prometheus collectors shared by the store, the
// network simulator and the RPC server.
//
// Every method is safe on a nil *Metrics, so components can be built without
// a registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "groovematch"

// Metrics is a private registry plus the collectors registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	rpcRequests      *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	storeMutations   *prometheus.CounterVec
	saveFailures     prometheus.Counter
	injectedFailures prometheus.Counter
	simulatedLatency prometheus.Histogram
}

// New creates and registers all collectors, plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		storeMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Document store mutations, by operation.",
		}, []string{"op"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_save_failures_total",
			Help:      "Document saves that did not reach durable storage.",
		}),
		injectedFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "netsim_injected_failures_total",
			Help:      "Calls failed on purpose by the network simulator.",
		}),
		simulatedLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "netsim_latency_seconds",
			Help:      "Artificial latency added by the network simulator.",
			Buckets:   []float64{.1, .2, .3, .4, .5, .6, .7, .8, 1},
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.storeMutations,
		m.saveFailures,
		m.injectedFailures,
		m.simulatedLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// StoreMutation counts one applied store mutation.
func (m *Metrics) StoreMutation(op string) {
	if m == nil {
		return
	}
	m.storeMutations.WithLabelValues(op).Inc()
}

// SaveFailed counts one failed document save.
func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.saveFailures.Inc()
}

// InjectedFailure counts one simulated network failure.
func (m *Metrics) InjectedFailure() {
	if m == nil {
		return
	}
	m.injectedFailures.Inc()
}

// SimulatedLatency records one artificial delay.
func (m *Metrics) SimulatedLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.simulatedLatency.Observe(d.Seconds())
}
