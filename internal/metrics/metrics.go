// Package metrics exposes Prometheus collectors for the poll loops and the cache gateway.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sanisip"

// Poll and write results, used as label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics owns a private registry so tests can create as many as they need.
// All methods are safe on a nil receiver.
type Metrics struct {
	reg *prometheus.Registry

	polls          *prometheus.CounterVec
	connected      prometheus.Gauge
	cacheRequests  *prometheus.CounterVec
	filterDaysLeft prometheus.Gauge
	filterWrites   *prometheus.CounterVec
}

// New registers all collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_total",
			Help:      "Sensor poll cycles by result.",
		}, []string{"result"}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected",
			Help:      "1 when the last sensor poll succeeded.",
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Requests routed through the cache gateway by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		filterDaysLeft: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filter_days_left",
			Help:      "Days left before the filter must be replaced.",
		}),
		filterWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_writes_total",
			Help:      "Filter maintenance writes by operation and result.",
		}, []string{"op", "result"}),
	}
	m.reg.MustRegister(
		m.polls,
		m.connected,
		m.cacheRequests,
		m.filterDaysLeft,
		m.filterWrites,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ObservePoll counts one poll cycle and updates the connectivity gauge.
func (m *Metrics) ObservePoll(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.polls.WithLabelValues(ResultOK).Inc()
		m.connected.Set(1)
		return
	}
	m.polls.WithLabelValues(ResultError).Inc()
	m.connected.Set(0)
}

// ObserveCache implements gateway.Recorder.
func (m *Metrics) ObserveCache(strategy, outcome string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(strategy, outcome).Inc()
}

// SetFilterDaysLeft records the latest computed filter status.
func (m *Metrics) SetFilterDaysLeft(days int) {
	if m == nil {
		return
	}
	m.filterDaysLeft.Set(float64(days))
}

// ObserveFilterWrite counts one start-date or reset write.
func (m *Metrics) ObserveFilterWrite(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.filterWrites.WithLabelValues(op, result).Inc()
}
