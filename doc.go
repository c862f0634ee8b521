/*
Package stepwise records classic algorithms as replayable traces.

An instrumented algorithm runs to completion and returns a Trace: an ordered list of
immutable Snapshots, each holding a deep copy of the algorithm's state plus a tag and a
human-readable description of the step that produced it. A Stepper then walks the trace
one snapshot at a time, which is all a presentation layer needs to animate the run.

# Algorithms

  - Union-Find with path compression and union by rank (pkg/algorithms/unionfind).
  - A word dictionary with '.' wildcard search by backtracking (pkg/algorithms/trie).
  - Kahn's topological sort over the character order implied by a sorted word list
    (pkg/algorithms/toposort).

Each package exposes typed traces. The root package adds an Engine that runs
declarative scenarios (pkg/scenario) with logging and lifecycle hooks, and returns
type-erased traces suitable for JSON, HTTP and MCP consumers.

# Usage

	eng := stepwise.New(stepwise.WithLogger(logger))

	sc := domain.Scenario{
		Algorithm: domain.AlgorithmTopologicalSort,
		Input:     map[string]any{"words": []any{"wrt", "wrf", "er", "ett", "rftt"}},
	}

	st, err := eng.Stepper(ctx, sc)
	if err != nil {
		log.Fatal(err)
	}
	for {
		snap, ok := st.Advance()
		if !ok {
			break
		}
		fmt.Println(snap.Step, snap.Tag, snap.Description)
	}

Invalid input is rejected before any snapshot is recorded; errors match
domain.ErrInvalidInput. Algorithmic failures such as a cycle, a missed search or a
redundant union are not errors: they are the tag and state of the final snapshot.
*/
package stepwise
