package scenario_test

import (
	"testing"

	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scenario"
	"github.com/aretw0/stepwise/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("Union-Find", func(t *testing.T) {
		tr, err := scenario.Run(domain.Scenario{
			Algorithm: domain.AlgorithmUnionFind,
			Input:     map[string]any{"n": 5, "edges": []any{[]any{0, 1}, []any{1, 2}, []any{3, 4}}},
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.AlgorithmUnionFind), tr.Algorithm())

		last, _ := tr.Last()
		st, ok := last.State.(unionfind.State)
		require.True(t, ok)
		assert.Equal(t, 2, st.Count)
	})

	t.Run("Trie", func(t *testing.T) {
		tr, err := scenario.Run(domain.Scenario{
			Algorithm: domain.AlgorithmTrie,
			Input:     map[string]any{"words": []any{"bad", "dad", "mad"}, "queries": []any{"b..", ".ad", "bax"}},
		})
		require.NoError(t, err)

		last, _ := tr.Last()
		st := last.State.(trie.State)
		require.Len(t, st.Results, 3)
		assert.True(t, st.Results[0].Found)
		assert.True(t, st.Results[1].Found)
		assert.False(t, st.Results[2].Found)
	})

	t.Run("Topological sort", func(t *testing.T) {
		tr, err := scenario.Run(domain.Scenario{
			Algorithm: domain.AlgorithmTopologicalSort,
			Input:     map[string]any{"words": []any{"z", "x"}},
		})
		require.NoError(t, err)
		last, _ := tr.Last()
		assert.Equal(t, "zx", last.State.(toposort.State).Order)
	})

	t.Run("Float edges decode as ints", func(t *testing.T) {
		tr, err := scenario.Run(domain.Scenario{
			Algorithm: domain.AlgorithmUnionFind,
			Input:     map[string]any{"n": 3.0, "edges": []any{[]any{0.0, 2.0}}},
		})
		require.NoError(t, err)
		last, _ := tr.Last()
		assert.Equal(t, []int{0, 1, 0}, last.State.(unionfind.State).Roots)
	})
}

func TestRun_Deterministic(t *testing.T) {
	sc := domain.Scenario{
		Algorithm: domain.AlgorithmTrie,
		Input:     map[string]any{"words": []any{"ab", "ac"}, "queries": []any{"a."}},
	}
	first, err := scenario.Run(sc)
	require.NoError(t, err)
	second, err := scenario.Run(sc)
	require.NoError(t, err)
	assert.Equal(t, first.Snapshots(), second.Snapshots())
}

func TestRun_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		sc      domain.Scenario
		wantErr error
		fields  []string
		runOnly bool // schema-valid; rejected by the algorithm itself
	}{
		{
			name:    "unknown algorithm",
			sc:      domain.Scenario{Algorithm: "bubble-sort"},
			wantErr: domain.ErrUnknownAlgorithm,
		},
		{
			name:    "missing fields",
			sc:      domain.Scenario{Algorithm: domain.AlgorithmTrie, Input: map[string]any{}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"queries", "words"},
		},
		{
			name: "unknown field",
			sc: domain.Scenario{Algorithm: domain.AlgorithmTopologicalSort, Input: map[string]any{
				"words": []any{"a"}, "alphabet": "ab",
			}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"alphabet"},
		},
		{
			name: "edge is not a pair",
			sc: domain.Scenario{Algorithm: domain.AlgorithmUnionFind, Input: map[string]any{
				"n": 3, "edges": []any{[]any{0, 1, 2}},
			}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"edges"},
		},
		{
			name: "size over the limit",
			sc: domain.Scenario{Algorithm: domain.AlgorithmUnionFind, Input: map[string]any{
				"n": 1 << 62, "edges": []any{},
			}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"n"},
		},
		{
			name: "size as a large JSON number",
			sc: domain.Scenario{Algorithm: domain.AlgorithmUnionFind, Input: map[string]any{
				"n": float64(2e7), "edges": []any{},
			}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"n"},
		},
		{
			name: "edge out of range",
			sc: domain.Scenario{Algorithm: domain.AlgorithmUnionFind, Input: map[string]any{
				"n": 2, "edges": []any{[]any{0, 7}},
			}},
			wantErr: domain.ErrInvalidInput,
			runOnly: true,
		},
		{
			name: "word with digits",
			sc: domain.Scenario{Algorithm: domain.AlgorithmTrie, Input: map[string]any{
				"words": []any{"b4d"}, "queries": []any{},
			}},
			wantErr: domain.ErrInvalidInput,
			fields:  []string{"words"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := scenario.Run(tt.sc)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.fields != nil {
				var keys []string
				for _, e := range schema.ValidationErrors(err) {
					keys = append(keys, e.(*schema.ValidationError).Key)
				}
				assert.Equal(t, tt.fields, keys)
			}

			if tt.runOnly {
				assert.NoError(t, scenario.Validate(tt.sc))
			} else {
				assert.ErrorIs(t, scenario.Validate(tt.sc), tt.wantErr)
			}
		})
	}
}

func TestValidate_NamesScenario(t *testing.T) {
	err := scenario.Validate(domain.Scenario{Name: "broken", Algorithm: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "broken"`)
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestAlgorithms(t *testing.T) {
	entries := scenario.Algorithms()
	require.Len(t, entries, 3)
	for _, alg := range domain.SupportedAlgorithms() {
		found := false
		for _, e := range entries {
			if e.Algorithm == alg {
				found = true
				assert.NotEmpty(t, e.Description)
				assert.NotEmpty(t, e.Schema)
			}
		}
		assert.True(t, found, "%s is registered", alg)
	}
}
