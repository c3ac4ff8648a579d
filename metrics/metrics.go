// Package metrics exposes Fotolia API usage as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s0up4200/fotoctl/fotolia"
)

const namespace = "fotoctl"

// OutcomeOK labels a call that returned no error.
const OutcomeOK = "ok"

// Collector is a fotolia.Recorder backed by its own registry.
type Collector struct {
	registry *prometheus.Registry

	calls     *prometheus.CounterVec
	callTime  *prometheus.HistogramVec
	lastCall  prometheus.Gauge
	downloads *prometheus.CounterVec
}

// New creates a Collector with every metric registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Count of Fotolia API calls by method and outcome",
		}, []string{"method", "outcome"}),
		callTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Time spent in each Fotolia API call",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 120},
		}, []string{"method"}),
		lastCall: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "last_call_sequence",
			Help:      "Sequence number of the most recent call",
		}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "downloads_total",
			Help:      "Count of media downloads by kind and outcome",
		}, []string{"kind", "outcome"}),
	}

	c.registry.MustRegister(
		c.calls,
		c.callTime,
		c.lastCall,
		c.downloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// RecordCall implements fotolia.Recorder.
func (c *Collector) RecordCall(d fotolia.CallDiagnostics) {
	c.calls.WithLabelValues(d.Method, Outcome(d.Err)).Inc()
	c.callTime.WithLabelValues(d.Method).Observe(d.Elapsed.Seconds())
	c.lastCall.Set(float64(d.Sequence))
}

// ObserveDownload counts a finished download. kind is "media" or "comp".
func (c *Collector) ObserveDownload(kind string, err error) {
	c.downloads.WithLabelValues(kind, Outcome(err)).Inc()
}

// Outcome maps an error to a label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if k := fotolia.KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
