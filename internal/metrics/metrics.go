// Package metrics exports regeneration activity as Prometheus collectors,
// fed through domain.LifecycleHooks.
package metrics

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	Passes       *prometheus.CounterVec
	PassDuration *prometheus.HistogramVec
	Publishes    *prometheus.CounterVec
	Removals     *prometheus.CounterVec
	SlotBytes    *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animgraph_passes_total",
				Help: "Total number of regeneration passes by outcome",
			},
			[]string{"container", "result"},
		),
		PassDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animgraph_pass_duration_seconds",
				Help:    "Duration of regeneration passes",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"container"},
		),
		Publishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animgraph_slot_publishes_total",
				Help: "Total number of slot writes",
			},
			[]string{"container", "created"},
		),
		Removals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animgraph_slot_removals_total",
				Help: "Total number of slots removed by prune, reset or explicit delete",
			},
			[]string{"container"},
		),
		SlotBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animgraph_slot_bytes",
				Help:    "Size of published slot content",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{"container"},
		),
	}
	reg.MustRegister(m.Passes, m.PassDuration, m.Publishes, m.Removals, m.SlotBytes)
	return m
}

// Hooks records every event on the collectors and logs it.
// A nil logger is replaced by a no-op one.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		logger = logging.NewNop()
	}
	return domain.LifecycleHooks{
		OnPassStart: func(ctx context.Context, e *domain.PassEvent) {
			logger.Debug("pass_start", "container", e.Container)
		},
		OnPassEnd: func(ctx context.Context, e *domain.PassEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.Passes.WithLabelValues(e.Container, result).Inc()
			m.PassDuration.WithLabelValues(e.Container).Observe(e.Duration.Seconds())
			logger.Info("pass_end",
				"container", e.Container,
				"outputs", e.Outputs,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
		OnPublish: func(ctx context.Context, e *domain.SlotEvent) {
			m.Publishes.WithLabelValues(e.Container, strconv.FormatBool(e.Created)).Inc()
			m.SlotBytes.WithLabelValues(e.Container).Observe(float64(e.Bytes))
			logger.Info("slot_publish", "container", e.Container, "key", e.Key, "slot_id", e.SlotID, "created", e.Created)
		},
		OnSlotRemoved: func(ctx context.Context, e *domain.SlotEvent) {
			m.Removals.WithLabelValues(e.Container).Inc()
			logger.Info("slot_removed", "container", e.Container, "key", e.Key, "slot_id", e.SlotID)
		},
	}
}
