package stepwise

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/registry"
	"github.com/aretw0/stepwise/pkg/scenario"
	"github.com/aretw0/stepwise/pkg/trace"
)

// Engine is the high-level entry point for running scenarios.
// It is stateless apart from its configuration and safe for concurrent use.
type Engine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng
}

// Algorithms describes every algorithm a scenario may name.
func (e *Engine) Algorithms() []registry.Entry {
	return scenario.Algorithms()
}

// Validate checks a scenario without running it.
func (e *Engine) Validate(sc domain.Scenario) error {
	return scenario.Validate(sc)
}

// Run executes the scenario and returns its complete trace.
// The run itself cannot be interrupted; ctx is checked before it starts and is
// passed to the lifecycle hooks.
func (e *Engine) Run(ctx context.Context, sc domain.Scenario) (*domain.Trace[any], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := e.logger.With("scenario", sc.Name, "algorithm", sc.Algorithm)
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart},
			Scenario:  sc.Name,
			Algorithm: sc.Algorithm,
		})
	}

	start := time.Now()
	tr, err := scenario.Run(sc)

	evt := &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunComplete},
		Scenario:  sc.Name,
		Algorithm: sc.Algorithm,
		Err:       err,
	}
	if err != nil {
		logger.Warn("run rejected", "err", err)
	} else {
		last, _ := tr.Last()
		evt.Snapshots = tr.Len()
		evt.Outcome = last.Tag
		logger.Debug("run complete", "snapshots", tr.Len(), "outcome", last.Tag, "duration", time.Since(start))
	}
	if e.hooks.OnRunComplete != nil {
		e.hooks.OnRunComplete(ctx, evt)
	}

	return tr, err
}

// Stepper runs the scenario and returns a cursor positioned before its first snapshot.
func (e *Engine) Stepper(ctx context.Context, sc domain.Scenario) (*trace.Stepper[any], error) {
	tr, err := e.Run(ctx, sc)
	if err != nil {
		return nil, err
	}
	return trace.NewStepper(tr), nil
}

// RunUnionFind applies edges to n singletons. See unionfind.Run.
func RunUnionFind(n int, edges [][2]int) (*domain.Trace[unionfind.State], error) {
	return unionfind.Run(n, edges)
}

// BuildTrieAndSearch adds words to a fresh dictionary and runs every query.
// See trie.BuildAndSearch.
func BuildTrieAndSearch(words, queries []string) (*domain.Trace[trie.State], error) {
	return trie.BuildAndSearch(words, queries)
}

// TopologicalOrder derives the alphabet order implied by sorted words.
// See toposort.Order.
func TopologicalOrder(words []string) *domain.Trace[toposort.State] {
	return toposort.Order(words)
}
