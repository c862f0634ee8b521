package unionfind

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Run applies every edge to a fresh set of n singletons and returns the full trace:
// INIT, then the finds and union outcome of each edge, then a terminal DONE snapshot
// carrying the final count and the root of every element.
//
// Input is validated before anything is recorded.
func Run(n int, edges [][2]int) (*domain.Trace[State], error) {
	d, err := New(n)
	if err != nil {
		return nil, err
	}
	for k, e := range edges {
		if err := d.check(e[0]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", k, err)
		}
		if err := d.check(e[1]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", k, err)
		}
	}

	rec := newRecorder()
	rec.Recordf(TagInit, d.state(), "created %d singleton %s", n, plural(n, "set", "sets"))

	for _, e := range edges {
		d.union(rec, e[0], e[1])
	}

	final := d.state()
	final.Roots = d.Roots()
	rec.Recordf(TagDone, final, "applied %d %s; %d %s remain",
		len(edges), plural(len(edges), "edge", "edges"), d.count, plural(d.count, "set", "sets"))

	return rec.Trace(), nil
}
