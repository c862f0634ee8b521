package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
)

// tagWidth fits the longest tag (EDGE_DUPLICATE).
const tagWidth = 14

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path     string
	Scenario string // only run this scenario
	JSON     bool   // NDJSON output, one record per scenario
	Debug    bool
}

// RunRecord is one line of `run --json` output.
type RunRecord struct {
	Scenario  string             `json:"scenario"`
	Algorithm domain.Algorithm   `json:"algorithm"`
	Trace     *domain.Trace[any] `json:"trace,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Run runs every selected scenario of a file and prints each trace.
// Rejected scenarios are reported and the remaining ones still run.
func Run(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger := createLogger(opts.Debug)

	scenarios, err := loadScenarios(opts.Path, opts.Scenario)
	if err != nil {
		return err
	}
	engine := createEngine(logger, opts.Debug)

	enc := json.NewEncoder(out)
	failed := 0
	for _, sc := range scenarios {
		tr, err := engine.Run(ctx, sc)
		if err != nil {
			failed++
		}

		if opts.JSON {
			rec := RunRecord{Scenario: sc.Name, Algorithm: sc.Algorithm, Trace: tr}
			if err != nil {
				rec.Error = err.Error()
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}

		if err != nil {
			printSystemMessage(out, "%v", err)
			continue
		}
		if err := writeTrace(out, sc, tr); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios rejected", failed, len(scenarios))
	}
	return nil
}

// writeTrace prints one line per snapshot and the final state as a table.
func writeTrace(out io.Writer, sc domain.Scenario, tr *domain.Trace[any]) error {
	fmt.Fprintf(out, "== %s (%s, %d snapshots) ==\n", sc.Name, sc.Algorithm, tr.Len())
	for _, snap := range tr.Snapshots() {
		fmt.Fprintf(out, "%4d  %s  %s\n", snap.Step, tui.TagLabel(snap.Tag, tagWidth), snap.Description)
	}
	if last, ok := tr.Last(); ok {
		if err := tui.WriteState(out, last.State); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	return nil
}
