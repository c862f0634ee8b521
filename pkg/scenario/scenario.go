package scenario

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/registry"
	"github.com/aretw0/stepwise/pkg/schema"
)

var algorithms = newRegistry()

func newRegistry() *registry.Registry {
	r := registry.NewRegistry()

	r.Register(registry.Entry{
		Algorithm:   domain.AlgorithmUnionFind,
		Description: "Disjoint-set forest with path compression and union by rank",
		Schema: schema.Schema{
			"n":     schema.Size(unionfind.MaxElements),
			"edges": schema.Slice(schema.Tuple(schema.Int(), 2)),
		},
		Run: func(input map[string]any) (*domain.Trace[any], error) {
			var in UnionFindInput
			if err := Decode(input, &in); err != nil {
				return nil, err
			}
			tr, err := unionfind.Run(in.N, in.Pairs())
			if err != nil {
				return nil, err
			}
			return tr.Erase(), nil
		},
	})

	r.Register(registry.Entry{
		Algorithm:   domain.AlgorithmTrie,
		Description: "Word dictionary with '.' wildcard search by backtracking",
		Schema: schema.Schema{
			"words":   schema.Slice(schema.Word()),
			"queries": schema.Slice(schema.Pattern()),
		},
		Run: func(input map[string]any) (*domain.Trace[any], error) {
			var in TrieInput
			if err := Decode(input, &in); err != nil {
				return nil, err
			}
			tr, err := trie.BuildAndSearch(in.Words, in.Queries)
			if err != nil {
				return nil, err
			}
			return tr.Erase(), nil
		},
	})

	r.Register(registry.Entry{
		Algorithm:   domain.AlgorithmTopologicalSort,
		Description: "Character order implied by a sorted word list, via Kahn's algorithm",
		Schema: schema.Schema{
			"words": schema.Slice(schema.String()),
		},
		Run: func(input map[string]any) (*domain.Trace[any], error) {
			var in TopologicalInput
			if err := Decode(input, &in); err != nil {
				return nil, err
			}
			return toposort.Order(in.Words).Erase(), nil
		},
	})

	return r
}

// Algorithms describes every supported algorithm, ordered by name.
func Algorithms() []registry.Entry {
	return algorithms.Entries()
}

// Validate checks that the scenario names a supported algorithm and that its input
// matches that algorithm's schema. Nothing is run.
func Validate(sc domain.Scenario) error {
	if err := algorithms.Validate(sc.Algorithm, sc.Input); err != nil {
		return wrap(sc, err)
	}
	return nil
}

// Run validates the scenario, runs its algorithm and returns the trace.
// The same scenario always yields the same trace.
func Run(sc domain.Scenario) (*domain.Trace[any], error) {
	tr, err := algorithms.Execute(sc.Algorithm, sc.Input)
	if err != nil {
		return nil, wrap(sc, err)
	}
	return tr, nil
}

func wrap(sc domain.Scenario, err error) error {
	if sc.Name == "" {
		return err
	}
	return fmt.Errorf("scenario %q: %w", sc.Name, err)
}
