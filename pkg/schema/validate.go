package schema

import "sort"

// Schema is a map of field names to their expected types.
// Example: {"words": Slice(Word()), "queries": Slice(Pattern())}
type Schema map[string]Type

// Fields returns the field names in sorted order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for name := range s {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks if data conforms to the schema.
// Every schema field is required; fields not in the schema are reported too.
// Failures are returned together, ordered by field name.
func Validate(schema Schema, data map[string]any) error {
	var errs []error

	for _, fieldName := range schema.Fields() {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := schema[fieldName].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	unknown := make([]string, 0)
	for fieldName := range data {
		if _, ok := schema[fieldName]; !ok {
			unknown = append(unknown, fieldName)
		}
	}
	sort.Strings(unknown)
	for _, fieldName := range unknown {
		errs = append(errs, &ValidationError{
			Key:    fieldName,
			Reason: "not defined in schema",
		})
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
