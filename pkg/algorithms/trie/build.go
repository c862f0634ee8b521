package trie

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/schema"
)

// BuildAndSearch adds every word to a fresh dictionary, runs every query against it,
// and returns one continuous trace ending in a SUMMARY snapshot with all results.
//
// All words and queries are validated before anything is recorded.
func BuildAndSearch(words, queries []string) (*domain.Trace[State], error) {
	words, err := normalizeAll("words", words, schema.Word())
	if err != nil {
		return nil, err
	}
	queries, err = normalizeAll("queries", queries, schema.Pattern())
	if err != nil {
		return nil, err
	}

	d := New()
	rec := newRecorder()
	for _, w := range words {
		d.addWord(rec, w)
	}

	results := make([]QueryResult, 0, len(queries))
	found := 0
	for _, q := range queries {
		match, ok := d.search(rec, q)
		results = append(results, QueryResult{Pattern: q, Found: ok, Match: match})
		if ok {
			found++
		}
	}

	st := d.state(OpSummary, "", -1, d.root, "")
	st.Results = results
	rec.Recordf(TagSummary, st, "%d words stored in %d nodes; %d of %d queries matched",
		d.words, d.nodes, found, len(queries))

	return rec.Trace(), nil
}

func normalizeAll(field string, values []string, typ schema.Type) ([]string, error) {
	var errs []error
	out := make([]string, len(values))
	for i, v := range values {
		if err := typ.Validate(v); err != nil {
			errs = append(errs, &schema.ValidationError{
				Key:    fmt.Sprintf("%s[%d]", field, i),
				Reason: err.Error(),
				Value:  v,
			})
			continue
		}
		out[i] = schema.Normalize(v)
	}
	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}
	return out, nil
}
