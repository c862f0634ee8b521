package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	eng := stepwise.New(stepwise.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	cycle := domain.Scenario{
		Algorithm: domain.AlgorithmTopologicalSort,
		Input:     map[string]any{"words": []any{"z", "x", "z"}},
	}
	_, err := eng.Run(ctx, cycle)
	require.NoError(t, err)
	_, err = eng.Run(ctx, cycle)
	require.NoError(t, err)

	_, err = eng.Run(ctx, domain.Scenario{Algorithm: domain.AlgorithmUnionFind, Input: map[string]any{}})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("topological-sort", "CYCLE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("union-find", observability.OutcomeRejected)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Snapshots), "rejected runs record no snapshot count")
}

func TestMetrics_UnknownAlgorithmsShareOneLabel(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	eng := stepwise.New(stepwise.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	for _, name := range []domain.Algorithm{"bogo-sort", "sleep-sort", "bogo-sort-2"} {
		_, err := eng.Run(ctx, domain.Scenario{Algorithm: name})
		require.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.Runs), "one series for every unsupported name")
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.AlgorithmUnknown, observability.OutcomeRejected)))
}

func TestMetrics_Steps(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	h := m.Hooks()
	ctx := context.Background()

	h.OnStep(ctx, &domain.StepEvent{Position: 0})
	h.OnStep(ctx, &domain.StepEvent{Position: 1, Finished: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("true")))
}

func TestChain(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnRunStart: func(context.Context, *domain.RunEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { order = append(order, "b") },
		OnStep:     func(context.Context, *domain.StepEvent) { order = append(order, "step") },
	}

	h := observability.Chain(a, b)
	h.OnRunStart(context.Background(), &domain.RunEvent{})
	h.OnStep(context.Background(), &domain.StepEvent{})
	assert.Nil(t, h.OnRunComplete)
	assert.Equal(t, []string{"a", "b", "step"}, order)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := observability.LogHooks(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	h.OnRunComplete(ctx, &domain.RunEvent{Algorithm: domain.AlgorithmTrie, Outcome: "SUMMARY", Snapshots: 12})
	h.OnRunComplete(ctx, &domain.RunEvent{Algorithm: domain.AlgorithmTrie, Err: errors.New("boom")})

	out := buf.String()
	assert.True(t, strings.Contains(out, "run_complete") && strings.Contains(out, "outcome=SUMMARY"), out)
	assert.Contains(t, out, "run_rejected")
	assert.Contains(t, out, "err=boom")
}
