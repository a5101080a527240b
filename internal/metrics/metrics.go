// Package metrics exposes sweep counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tempsweep"

type Metrics struct {
	reg *prometheus.Registry

	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	lastRun        prometheus.Gauge
	filesScanned   prometheus.Counter
	filesDeleted   prometheus.Counter
	deleteFailures *prometheus.CounterVec
	dirsPruned     prometheus.Counter
	dirErrors      prometheus.Counter
	running        prometheus.Gauge
}

// New registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed sweep runs by outcome (ok, partial, canceled, error)",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a sweep run",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last sweep run finished",
		}),
		filesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Files matched by the scanner",
		}),
		filesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_deleted_total",
			Help:      "Expired files deleted",
		}),
		deleteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delete_failures_total",
			Help:      "Files that could not be deleted, by reason",
		}, []string{"reason"}),
		dirsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dirs_pruned_total",
			Help:      "Empty directories removed",
		}),
		dirErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dir_errors_total",
			Help:      "Directories the pruner could not read or remove",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while a sweep run is in progress",
		}),
	}

	m.reg.MustRegister(
		m.runs, m.runDuration, m.lastRun, m.filesScanned, m.filesDeleted,
		m.deleteFailures, m.dirsPruned, m.dirErrors, m.running,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns the http.Handler for /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) FileDeleted()             { m.filesDeleted.Inc() }
func (m *Metrics) FileFailed(reason string) { m.deleteFailures.WithLabelValues(reason).Inc() }

func (m *Metrics) RunStarted() { m.running.Set(1) }

// RunFinished records the totals of one run.
func (m *Metrics) RunFinished(result string, scanned, pruned, dirErrors int, dur time.Duration, at time.Time) {
	m.running.Set(0)
	m.runs.WithLabelValues(result).Inc()
	m.runDuration.Observe(dur.Seconds())
	m.lastRun.Set(float64(at.Unix()))
	m.filesScanned.Add(float64(scanned))
	m.dirsPruned.Add(float64(pruned))
	m.dirErrors.Add(float64(dirErrors))
}
