// Package metrics exports search events as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
)

// Prometheus implements engine.Observer on a private registry, so several
// instances (one per test, one per run) never collide.
type Prometheus struct {
	registry *prometheus.Registry

	pops         prometheus.Counter
	queueDepth   prometheus.Gauge
	fingerprints *prometheus.CounterVec
	branches     prometheus.Counter
	covers       *prometheus.CounterVec
	results      *prometheus.CounterVec
	searches     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

var _ engine.Observer = (*Prometheus)(nil)

// NewPrometheus creates an observer with its own registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		pops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgdesign_frontier_pops_total",
			Help: "Work items popped from the seed-search frontier",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sgdesign_frontier_depth",
			Help: "Work items queued after the last pop",
		}),
		fingerprints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgdesign_fingerprints_total",
			Help: "Canonical fingerprints computed, including cache hits",
		}, []string{"phase"}),
		branches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgdesign_branches_total",
			Help: "Seed-search candidates with an unseen fingerprint",
		}),
		covers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgdesign_covers_total",
			Help: "Exact covers consumed",
		}, []string{"phase"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgdesign_results_total",
			Help: "Distinct designs returned",
		}, []string{"phase"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgdesign_searches_total",
			Help: "Search operations finished",
		}, []string{"phase", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sgdesign_search_duration_seconds",
			Help:    "Wall time of search operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"phase"}),
	}

	p.registry.MustRegister(
		p.pops,
		p.queueDepth,
		p.fingerprints,
		p.branches,
		p.covers,
		p.results,
		p.searches,
		p.duration,
	)
	return p
}

// Registry exposes the private registry, e.g. for promhttp.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) FrontierPopped(queued int) {
	p.pops.Inc()
	p.queueDepth.Set(float64(queued))
}

func (p *Prometheus) FingerprintComputed(phase engine.Phase) {
	p.fingerprints.WithLabelValues(string(phase)).Inc()
}

func (p *Prometheus) BranchSpawned() {
	p.branches.Inc()
}

func (p *Prometheus) CoverFound(phase engine.Phase) {
	p.covers.WithLabelValues(string(phase)).Inc()
}

func (p *Prometheus) ResultRecorded(phase engine.Phase) {
	p.results.WithLabelValues(string(phase)).Inc()
}

func (p *Prometheus) SearchFinished(phase engine.Phase, _ int, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.searches.WithLabelValues(string(phase), status).Inc()
	p.duration.WithLabelValues(string(phase)).Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The file is replaced atomically.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
