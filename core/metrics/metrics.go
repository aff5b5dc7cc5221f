package metrics

import (
	"fmt"
	"time"

	"rados-compare/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rados_compare"

// Config holds configuration for the run metrics.
type Config struct {
	// Enabled writes the metrics textfile at the end of every run.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// File is the textfile name, relative to the output directory unless absolute.
	File string `mapstructure:"file" default:"rados_copy.prom"`
}

// Metrics provides a self-contained Prometheus registry with the collectors of one run.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	reg          *prometheus.Registry
	buckets      *prometheus.CounterVec
	mismatches   *prometheus.GaugeVec
	pages        *prometheus.CounterVec
	listed       *prometheus.CounterVec
	filtered     *prometheus.CounterVec
	listDuration *prometheus.HistogramVec
	status       prometheus.Gauge
	lastRun      prometheus.Gauge
}

// New creates a Metrics instance with a fresh registry and registers collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	buckets := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "run",
		Name:      "buckets_total",
		Help:      "Number of buckets reconciled, partitioned by result (clean, mismatch).",
	}, []string{"result"})
	mismatches := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "bucket",
		Name:      "mismatched_objects",
		Help:      "Number of disagreeing objects per bucket and status.",
	}, []string{"bucket", "status"})
	pages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "listing",
		Name:      "pages_total",
		Help:      "Total number of listing pages received per backend.",
	}, []string{"backend"})
	listed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "listing",
		Name:      "objects_total",
		Help:      "Total number of objects listed per backend, before the cutoff filter.",
	}, []string{"backend"})
	filtered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "listing",
		Name:      "objects_after_cutoff_total",
		Help:      "Total number of objects skipped per backend because they were modified after the cutoff.",
	}, []string{"backend"})
	listDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "listing",
		Name:      "duration_seconds",
		Help:      "Histogram of full bucket listing durations per backend.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 4, 10),
	}, []string{"backend"})
	status := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "run",
		Name:      "status",
		Help:      "1 if the last run found any mismatching bucket, 0 otherwise.",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "run",
		Name:      "last_run_timestamp_seconds",
		Help:      "Timestamp of the last completed run in seconds since epoch.",
	})

	reg.MustRegister(buckets, mismatches, pages, listed, filtered, listDuration, status, lastRun)

	return &Metrics{
		reg:          reg,
		buckets:      buckets,
		mismatches:   mismatches,
		pages:        pages,
		listed:       listed,
		filtered:     filtered,
		listDuration: listDuration,
		status:       status,
		lastRun:      lastRun,
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObservePage counts one listing page and its objects.
func (m *Metrics) ObservePage(backend string, objects int) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(backend).Inc()
	m.listed.WithLabelValues(backend).Add(float64(objects))
}

// ObserveListing records a completed listing of one bucket on one backend.
func (m *Metrics) ObserveListing(backend string, skipped int, dur time.Duration) {
	if m == nil {
		return
	}
	m.filtered.WithLabelValues(backend).Add(float64(skipped))
	m.listDuration.WithLabelValues(backend).Observe(dur.Seconds())
}

// ObserveBucket records the reconciliation result of one bucket.
func (m *Metrics) ObserveBucket(bucket string, result reconcile.Result) {
	if m == nil {
		return
	}
	if len(result) == 0 {
		m.buckets.WithLabelValues("clean").Inc()
		return
	}
	m.buckets.WithLabelValues("mismatch").Inc()
	for status, count := range result.Counts() {
		m.mismatches.WithLabelValues(bucket, string(status)).Set(float64(count))
	}
}

// ObserveRun records the end of a run.
func (m *Metrics) ObserveRun(mismatchedBuckets int, at time.Time) {
	if m == nil {
		return
	}
	if mismatchedBuckets > 0 {
		m.status.Set(1)
	} else {
		m.status.Set(0)
	}
	m.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics in the text exposition format, for the node exporter
// textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
