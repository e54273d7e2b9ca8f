// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "fairsplit"

// Metrics groups the RPC and domain collectors. A nil *Metrics records nothing.
type Metrics struct {
	RPCTotal    *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec
	InFlight    prometheus.Gauge

	SettlementsTotal prometheus.Counter
	CoverageTotal    *prometheus.CounterVec
	BillsSaved       *prometheus.CounterVec
}

// New registers and returns the collectors. A nil registerer means the default one.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		RPCTotal: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"})),
		RPCDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_ms",
			Help:      "RPC latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"procedure"})),
		InFlight: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rpc_in_flight",
			Help:      "Current number of in-flight RPCs.",
		})),
		SettlementsTotal: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_computed_total",
			Help:      "Number of bills settled.",
		})),
		CoverageTotal: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coverage_entries_total",
			Help:      "Coverage entries seen while settling, by payer kind.",
		}, []string{"kind"})),
		BillsSaved: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_saved_total",
			Help:      "Bill snapshots written to history, by status.",
		}, []string{"status"})),
	}
	return m
}

// RegisterRuntime adds the Go runtime and process collectors to reg.
func RegisterRuntime(reg prometheus.Registerer) {
	register(reg, collectors.NewGoCollector())
	register(reg, collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RPCTotal.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(DurationMillis(d))
}

// ObserveSettlement records a settled bill and its coverage entry kinds.
func (m *Metrics) ObserveSettlement(direct, group int) {
	if m == nil {
		return
	}
	m.SettlementsTotal.Inc()
	if direct > 0 {
		m.CoverageTotal.WithLabelValues("direct").Add(float64(direct))
	}
	if group > 0 {
		m.CoverageTotal.WithLabelValues("split_all").Add(float64(group))
	}
}

// ObserveBillSaved records a history write.
func (m *Metrics) ObserveBillSaved(status string) {
	if m == nil {
		return
	}
	m.BillsSaved.WithLabelValues(status).Inc()
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// register adds c to reg, or returns the equal collector reg already holds.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
