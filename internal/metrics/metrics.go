// Package metrics exposes Prometheus instrumentation for the web surface
// and summary gauges describing the last pipeline run.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the registry and every metric the server publishes.
type Collector struct {
	reg *prometheus.Registry

	RecordsLoaded   prometheus.Gauge
	RecordsSkipped  prometheus.Gauge
	SeriesRows      prometheus.Gauge
	TrendRows       prometheus.Gauge
	Diagnostics     *prometheus.GaugeVec // code label
	AnalysisSeconds prometheus.Gauge

	HTTPRequests *prometheus.CounterVec // path, status labels
	HTTPDuration prometheus.Histogram
}

// NewCollector builds and registers all metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atpulse_records_loaded",
			Help: "Activity records loaded in the last run.",
		}),
		RecordsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atpulse_records_skipped",
			Help: "Malformed activity records skipped in the last run.",
		}),
		SeriesRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atpulse_series_rows",
			Help: "Series table rows produced by the last run.",
		}),
		TrendRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atpulse_trend_rows",
			Help: "Trend table rows produced by the last run.",
		}),
		Diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "atpulse_diagnostics",
			Help: "Diagnostics raised by the last run.",
		}, []string{"code"}),
		AnalysisSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atpulse_analysis_duration_seconds",
			Help: "Wall-clock duration of the last analysis run.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atpulse_http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"path", "status"}),
		HTTPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "atpulse_http_request_duration_seconds",
			Help:    "HTTP request handling duration.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}

	reg.MustRegister(
		c.RecordsLoaded, c.RecordsSkipped,
		c.SeriesRows, c.TrendRows, c.Diagnostics, c.AnalysisSeconds,
		c.HTTPRequests, c.HTTPDuration,
	)
	return c
}

// Handler serves the registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request.
func (c *Collector) ObserveRequest(path string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	c.HTTPDuration.Observe(duration.Seconds())
}
