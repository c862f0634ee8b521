package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeRejected labels runs whose input was rejected before any snapshot was recorded.
const OutcomeRejected = "rejected"

// AlgorithmUnknown labels runs naming an unsupported algorithm, so client input
// never becomes a label value.
const AlgorithmUnknown = "unknown"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	Runs      *prometheus.CounterVec
	Snapshots *prometheus.HistogramVec
	Steps     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_runs_total",
				Help: "Total number of algorithm runs by terminal outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		Snapshots: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepwise_trace_snapshots",
				Help:    "Number of snapshots recorded per run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"algorithm"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_playback_steps_total",
				Help: "Total number of playback cursor movements",
			},
			[]string{"finished"},
		),
	}
	reg.MustRegister(m.Runs, m.Snapshots, m.Steps)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunComplete: func(_ context.Context, e *domain.RunEvent) {
			alg := string(e.Algorithm)
			if !e.Algorithm.Valid() {
				alg = AlgorithmUnknown
			}
			if e.Err != nil {
				m.Runs.WithLabelValues(alg, OutcomeRejected).Inc()
				return
			}
			m.Runs.WithLabelValues(alg, string(e.Outcome)).Inc()
			m.Snapshots.WithLabelValues(alg).Observe(float64(e.Snapshots))
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			if e.Finished {
				m.Steps.WithLabelValues("true").Inc()
			} else {
				m.Steps.WithLabelValues("false").Inc()
			}
		},
	}
}

// LogHooks returns lifecycle hooks that log every event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_start", "scenario", e.Scenario, "algorithm", e.Algorithm)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "run_rejected", "scenario", e.Scenario, "algorithm", e.Algorithm, "err", e.Err)
				return
			}
			logger.InfoContext(ctx, "run_complete",
				"scenario", e.Scenario,
				"algorithm", e.Algorithm,
				"snapshots", e.Snapshots,
				"outcome", e.Outcome,
			)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"session_id", e.SessionID,
				"position", e.Position,
				"tag", e.Tag,
				"finished", e.Finished,
			)
		},
	}
}

// Chain merges several hook sets; each callback runs in the given order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		if h.OnRunStart != nil {
			prev := out.OnRunStart
			out.OnRunStart = func(ctx context.Context, e *domain.RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunStart(ctx, e)
			}
		}
		if h.OnRunComplete != nil {
			prev := out.OnRunComplete
			out.OnRunComplete = func(ctx context.Context, e *domain.RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunComplete(ctx, e)
			}
		}
		if h.OnStep != nil {
			prev := out.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStep(ctx, e)
			}
		}
	}
	return out
}
