// Package promhooks exports cachex hook events as Prometheus metrics.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/cachex"
)

// Hooks records per-backend latency, failures and batch hit ratios.
type Hooks struct {
	latency   *prometheus.HistogramVec
	failures  *prometheus.CounterVec
	batchKeys *prometheus.CounterVec
	filtered  prometheus.Counter
}

var _ cachex.Hooks = (*Hooks)(nil)

// New creates the collectors and registers them with reg.
// Use prometheus.DefaultRegisterer for the global registry.
func New(reg prometheus.Registerer) (*Hooks, error) {
	h := &Hooks{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cachex",
			Name:      "backend_call_duration_seconds",
			Help:      "Latency of backend calls by cache and operation.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"cache", "op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cachex",
			Name:      "backend_failures_total",
			Help:      "Backend calls that failed and were contained.",
		}, []string{"cache", "op"}),
		batchKeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cachex",
			Name:      "batch_keys_total",
			Help:      "Keys requested by batch reads, by result.",
		}, []string{"cache", "result"}),
		filtered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cachex",
			Name:      "sentinel_filtered_total",
			Help:      "Negative-cache placeholders dropped during result conversion.",
		}),
	}
	for _, c := range []prometheus.Collector{h.latency, h.failures, h.batchKeys, h.filtered} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) OpCompleted(cache string, op cachex.Op, elapsed time.Duration, err error) {
	h.latency.WithLabelValues(cache, string(op)).Observe(elapsed.Seconds())
	if err != nil {
		h.failures.WithLabelValues(cache, string(op)).Inc()
	}
}

func (h *Hooks) BatchRead(cache string, requested, hits int) {
	h.batchKeys.WithLabelValues(cache, "hit").Add(float64(hits))
	h.batchKeys.WithLabelValues(cache, "miss").Add(float64(requested - hits))
}

func (h *Hooks) SentinelFiltered(n int) { h.filtered.Add(float64(n)) }
