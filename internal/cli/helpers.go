package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/scenario"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// createEngine builds an engine that logs run events when debug is on.
func createEngine(logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) *stepwise.Engine {
	if debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	return stepwise.New(
		stepwise.WithLogger(logger),
		stepwise.WithLifecycleHooks(observability.Chain(hooks...)),
	)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// loadScenarios reads a scenario file, optionally narrowed to one scenario.
func loadScenarios(path, name string) ([]domain.Scenario, error) {
	scenarios, err := scenario.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return scenarios, nil
	}
	sc, err := scenario.Find(scenarios, name)
	if err != nil {
		return nil, err
	}
	return []domain.Scenario{sc}, nil
}

// pickScenario selects the named scenario, or the first one when name is empty.
func pickScenario(path, name string) (domain.Scenario, error) {
	scenarios, err := loadScenarios(path, name)
	if err != nil {
		return domain.Scenario{}, err
	}
	if len(scenarios) == 0 {
		return domain.Scenario{}, fmt.Errorf("%s: no scenarios", path)
	}
	return scenarios[0], nil
}
