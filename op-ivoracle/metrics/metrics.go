package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	opmetrics "github.com/mantlenetworkio/iv-oracle/op-service/metrics"
)

const Namespace = "op_ivoracle"

type Metricer interface {
	RecordInfo(version string)
	RecordUp()

	RecordRequest(outcome string)
	RecordFetch(duration time.Duration, ok bool)
	RecordMarkIV(iv float64)
	RecordCallbacks(n int)
}

type Metrics struct {
	ns       string
	registry *prometheus.Registry
	factory  opmetrics.Factory

	info      prometheus.GaugeVec
	up        prometheus.Gauge
	requests  prometheus.CounterVec
	fetches   prometheus.HistogramVec
	markIV    prometheus.Gauge
	callbacks prometheus.Counter
}

var _ Metricer = (*Metrics)(nil)

func NewMetrics(procName string) *Metrics {
	if procName == "" {
		procName = "default"
	}
	ns := Namespace + "_" + procName

	registry := opmetrics.NewRegistry()
	factory := opmetrics.With(registry)

	return &Metrics{
		ns:       ns,
		registry: registry,
		factory:  factory,

		info: *factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "info",
			Help:      "Information about the iv oracle",
		}, []string{
			"version",
		}),
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "up",
			Help:      "1 if the op-ivoracle has finished starting up",
		}),
		requests: *factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "requests_total",
			Help:      "Requests handled, by outcome",
		}, []string{
			"outcome",
		}),
		fetches: *factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of order book fetches",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{
			"status",
		}),
		markIV: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "mark_iv",
			Help:      "Last mark IV read from the exchange, in percent",
		}),
		callbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "callbacks_total",
			Help:      "Callbacks prepared for the host",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordInfo(version string) {
	m.info.WithLabelValues(version).Set(1)
}

func (m *Metrics) RecordUp() {
	m.up.Set(1)
}

func (m *Metrics) RecordRequest(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordFetch(duration time.Duration, ok bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	m.fetches.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *Metrics) RecordMarkIV(iv float64) {
	m.markIV.Set(iv)
}

func (m *Metrics) RecordCallbacks(n int) {
	m.callbacks.Add(float64(n))
}

func (m *Metrics) Document() []opmetrics.DocumentedMetric {
	return m.factory.Document()
}
