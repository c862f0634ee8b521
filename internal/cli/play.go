package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/trace"
)

// PlayOptions contains the configuration for the play command.
type PlayOptions struct {
	Path     string
	Scenario string // defaults to the first scenario of the file
	Debug    bool

	// Interactive waits for a key between snapshots; otherwise the
	// whole trace is printed without prompts.
	Interactive bool
}

// Play replays one scenario snapshot by snapshot.
// Interactive keys: Enter advances, r resets, q quits.
func Play(ctx context.Context, opts PlayOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(opts.Debug)

	sc, err := pickScenario(opts.Path, opts.Scenario)
	if err != nil {
		return err
	}
	st, err := createEngine(logger, opts.Debug).Stepper(ctx, sc)
	if err != nil {
		return err
	}

	if !opts.Interactive {
		for snap, ok := st.Advance(); ok; snap, ok = st.Advance() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := showSnapshot(out, nil, snap, st.Len()); err != nil {
				return err
			}
		}
		return nil
	}

	tui.PrintBanner(out)
	printSystemMessage(out, "Playing %q (%s): %d snapshots.", sc.Name, sc.Algorithm, st.Len())
	return playInteractive(ctx, st, tui.NewRenderer(), in, out)
}

func playInteractive(ctx context.Context, st *trace.Stepper[any], render func(string) (string, error), in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if st.IsFinished() {
			fmt.Fprint(out, "[r] restart  [q] quit > ")
		} else {
			fmt.Fprint(out, "[Enter] next  [r] restart  [q] quit > ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q", "quit", "exit":
			printSystemMessage(out, "Stopped at step %d of %d.", st.Position()+1, st.Len())
			return nil
		case "r", "reset", "restart":
			st.Reset()
			printSystemMessage(out, "Back to the start.")
		case "":
			snap, ok := st.Advance()
			if !ok {
				printSystemMessage(out, "End of trace.")
				continue
			}
			if err := showSnapshot(out, render, snap, st.Len()); err != nil {
				return err
			}
		default:
			printSystemMessage(out, "Unknown key %q.", strings.TrimSpace(line))
		}
	}
}

func showSnapshot(out io.Writer, render func(string) (string, error), snap domain.Snapshot[any], total int) error {
	if render != nil {
		rendered, err := render(tui.SnapshotMarkdown(snap, total))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	} else {
		fmt.Fprintf(out, "[%d/%d] %s  %s\n", snap.Step+1, total, tui.TagLabel(snap.Tag, tagWidth), snap.Description)
	}
	return tui.WriteState(out, snap.State)
}
