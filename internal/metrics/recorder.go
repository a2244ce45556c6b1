// Package metrics instruments a coordinator run with Prometheus collectors
// and exports them in the text exposition format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric name.
const Namespace = "rangeprint"

// Recorder implements coordinator.Observer on top of a private Prometheus
// registry, so several recorders can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	spawned       prometheus.Counter
	spawnFailures prometheus.Counter
	joined        prometheus.Counter
	joinFailures  prometheus.Counter
	active        prometheus.Gauge
	lockWait      prometheus.Histogram
}

// NewRecorder creates a Recorder with its collectors registered, along with
// the Go runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_spawned_total",
			Help:      "Number of workers whose unit was started.",
		}),
		spawnFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "spawn_failures_total",
			Help:      "Number of failed unit starts.",
		}),
		joined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_joined_total",
			Help:      "Number of workers joined successfully.",
		}),
		joinFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "join_failures_total",
			Help:      "Number of failed joins.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_workers",
			Help:      "Workers spawned and not yet joined.",
		}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "lock_wait_seconds",
			Help:      "Time a worker blocked before acquiring the shared lock.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	mc := NewMemoryCollector()
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects at scrape time.",
	}, func() float64 { return float64(mc.Snapshot().HeapAlloc) })

	r.registry.MustRegister(
		r.spawned, r.spawnFailures, r.joined, r.joinFailures, r.active, r.lockWait,
		heap,
		collectors.NewGoCollector(),
	)
	return r
}

// WorkerSpawned counts a started unit.
func (r *Recorder) WorkerSpawned(int) {
	r.spawned.Inc()
	r.active.Inc()
}

// SpawnFailed counts a failed unit start.
func (r *Recorder) SpawnFailed(int) {
	r.spawnFailures.Inc()
}

// WorkerJoined counts a join and its outcome.
func (r *Recorder) WorkerJoined(_ int, err error) {
	if err != nil {
		r.joinFailures.Inc()
		return
	}
	r.joined.Inc()
	r.active.Dec()
}

// LockWaited observes a lock acquisition delay.
func (r *Recorder) LockWaited(wait time.Duration) {
	r.lockWait.Observe(wait.Seconds())
}

// Gatherer exposes the registry, e.g. for promhttp or testutil.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, atomically, as expected by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
