// Package schema validates raw algorithm input before any trace is built.
//
// Scenario input arrives as loosely typed data (decoded YAML or JSON). A Schema maps
// field names to Types; Validate reports every failure at once as an *AggregateError
// of *ValidationError, and every such error matches domain.ErrInvalidInput via errors.Is.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "n":     schema.Int(),
//	    "edges": schema.Slice(schema.Tuple(schema.Int(), 2)),
//	}
//
//	data := map[string]any{
//	    "n":     5,
//	    "edges": []any{[]any{0, 1}, []any{3, 4}},
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    // errors.Is(err, domain.ErrInvalidInput) == true
//	}
package schema
