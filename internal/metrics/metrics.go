// Package metrics exposes pipeline and HTTP counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	registry *prometheus.Registry

	pipelineRuns     prometheus.Counter
	pipelineDuration prometheus.Histogram
	filteredRows     *prometheus.HistogramVec
	datasetRows      *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	exports          *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Recorder{
		registry: registry,
		pipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bikeshare_pipeline_runs_total",
			Help: "Filter and aggregation passes over the dataset.",
		}),
		pipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bikeshare_pipeline_duration_seconds",
			Help:    "Duration of one filter and aggregation pass.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		filteredRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikeshare_filtered_rows",
			Help:    "Rows kept by the date filter per run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}, []string{"table"}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bikeshare_dataset_rows",
			Help: "Rows loaded at startup.",
		}, []string{"table"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikeshare_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikeshare_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikeshare_exports_total",
			Help: "Exports served by format.",
		}, []string{"format"}),
	}

	registry.MustRegister(
		r.pipelineRuns,
		r.pipelineDuration,
		r.filteredRows,
		r.datasetRows,
		r.httpRequests,
		r.httpDuration,
		r.exports,
	)
	return r
}

// Registry returns the Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveDataset(daily, hourly int) {
	r.datasetRows.WithLabelValues("daily").Set(float64(daily))
	r.datasetRows.WithLabelValues("hourly").Set(float64(hourly))
}

func (r *Recorder) ObservePipeline(d time.Duration, daily, hourly int) {
	r.pipelineRuns.Inc()
	r.pipelineDuration.Observe(d.Seconds())
	r.filteredRows.WithLabelValues("daily").Observe(float64(daily))
	r.filteredRows.WithLabelValues("hourly").Observe(float64(hourly))
}

// ObserveHTTP records one request. route should be the mux pattern, not the
// raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, route string, code int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (r *Recorder) ObserveExport(format string) {
	r.exports.WithLabelValues(format).Inc()
}
