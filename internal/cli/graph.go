package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/stepwise/internal/presentation/graph"
)

// GraphOptions contains the configuration for the graph command.
type GraphOptions struct {
	Path     string
	Scenario string
	Step     int // negative selects the last snapshot
}

// Graph prints the Mermaid diagram of one snapshot.
func Graph(opts GraphOptions, out io.Writer) error {
	sc, err := pickScenario(opts.Path, opts.Scenario)
	if err != nil {
		return err
	}
	output, err := graph.Render(sc, opts.Step)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, output)
	return err
}
