// Package promcollector implements txlsh.MetricsCollector with Prometheus
// counters and histograms on a private registry.
//
//	c, _ := promcollector.New(promcollector.Options{Namespace: "txlsh"})
//	b := txlsh.NewDefault(txlsh.WithMetricsCollector(c))
//	http.Handle("/metrics", c.Handler())
package promcollector

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/txlsh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Compile-time interface check.
var _ txlsh.MetricsCollector = (*Collector)(nil)

// Options configures the collector.
type Options struct {
	// Namespace prefixes every metric name (default: "txlsh").
	Namespace string

	// ConstLabels are attached to every metric.
	ConstLabels prometheus.Labels
}

// Collector records txlsh operations as Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	buildsTotal   *prometheus.CounterVec
	buildBytes    prometheus.Counter
	buildDuration prometheus.Histogram

	scansTotal   prometheus.Counter
	scanBlobs    *prometheus.CounterVec
	scanBytes    prometheus.Counter
	scanDuration prometheus.Histogram

	searchesTotal    *prometheus.CounterVec
	searchCandidates prometheus.Histogram
	searchMatches    prometheus.Histogram
	searchDuration   prometheus.Histogram
}

// New creates a collector with its own registry.
func New(opts Options) (*Collector, error) {
	if opts.Namespace == "" {
		opts.Namespace = "txlsh"
	}

	c := &Collector{
		// Custom registry (don't pollute default)
		registry: prometheus.NewRegistry(),
	}

	c.buildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "builds_total",
		Help:        "Total number of digest builds by result",
		ConstLabels: opts.ConstLabels,
	}, []string{"result"})

	c.buildBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "build_input_bytes_total",
		Help:        "Total number of input bytes digested",
		ConstLabels: opts.ConstLabels,
	})

	c.buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   opts.Namespace,
		Name:        "build_duration_seconds",
		Help:        "Time spent finalizing digests",
		ConstLabels: opts.ConstLabels,
		Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	c.scansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "scans_total",
		Help:        "Total number of blob store scans",
		ConstLabels: opts.ConstLabels,
	})

	c.scanBlobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "scan_blobs_total",
		Help:        "Total number of scanned blobs by result",
		ConstLabels: opts.ConstLabels,
	}, []string{"result"})

	c.scanBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "scan_bytes_total",
		Help:        "Total number of bytes digested by scans",
		ConstLabels: opts.ConstLabels,
	})

	c.scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   opts.Namespace,
		Name:        "scan_duration_seconds",
		Help:        "Wall time of blob store scans",
		ConstLabels: opts.ConstLabels,
		Buckets:     prometheus.DefBuckets,
	})

	c.searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   opts.Namespace,
		Name:        "searches_total",
		Help:        "Total number of index searches by result",
		ConstLabels: opts.ConstLabels,
	}, []string{"result"})

	c.searchCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   opts.Namespace,
		Name:        "search_candidates",
		Help:        "Digests compared per search after length pruning",
		ConstLabels: opts.ConstLabels,
		Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
	})

	c.searchMatches = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   opts.Namespace,
		Name:        "search_matches",
		Help:        "Matches returned per search",
		ConstLabels: opts.ConstLabels,
		Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
	})

	c.searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   opts.Namespace,
		Name:        "search_duration_seconds",
		Help:        "Time spent per index search",
		ConstLabels: opts.ConstLabels,
		Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	for _, m := range []prometheus.Collector{
		c.buildsTotal, c.buildBytes, c.buildDuration,
		c.scansTotal, c.scanBlobs, c.scanBytes, c.scanDuration,
		c.searchesTotal, c.searchCandidates, c.searchMatches, c.searchDuration,
	} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("promcollector: register: %w", err)
		}
	}

	return c, nil
}

// Registry returns the private registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns an HTTP handler serving the metrics in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordBuild implements txlsh.MetricsCollector.
func (c *Collector) RecordBuild(bytes uint64, duration time.Duration, err error) {
	c.buildsTotal.WithLabelValues(result(err)).Inc()
	c.buildBytes.Add(float64(bytes))
	c.buildDuration.Observe(duration.Seconds())
}

// RecordScan implements txlsh.MetricsCollector.
func (c *Collector) RecordScan(blobs, failed int, bytes int64, duration time.Duration) {
	c.scansTotal.Inc()
	c.scanBlobs.WithLabelValues("ok").Add(float64(blobs - failed))
	c.scanBlobs.WithLabelValues("error").Add(float64(failed))
	c.scanBytes.Add(float64(bytes))
	c.scanDuration.Observe(duration.Seconds())
}

// RecordSearch implements txlsh.MetricsCollector.
func (c *Collector) RecordSearch(candidates, matches int, duration time.Duration, err error) {
	c.searchesTotal.WithLabelValues(result(err)).Inc()
	if err != nil {
		return
	}
	c.searchCandidates.Observe(float64(candidates))
	c.searchMatches.Observe(float64(matches))
	c.searchDuration.Observe(duration.Seconds())
}
