package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// SliceType validates slices of a specific element type.
// A positive size additionally requires an exact length (a tuple).
type SliceType struct {
	elemType Type
	size     int
}

func (t *SliceType) Name() string {
	if t.size > 0 {
		names := make([]string, t.size)
		for i := range names {
			names[i] = t.elemType.Name()
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	if t.size > 0 && rv.Len() != t.size {
		return fmt.Errorf("expected %d elements, got %d", t.size, rv.Len())
	}

	// Validate each element
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Tuple creates a validator for slices of exactly size elements of the given type.
func Tuple(elemType Type, size int) Type {
	return &SliceType{elemType: elemType, size: size}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// Size accepts whole numbers in [0, max], such as an element count.
func Size(max int) Type {
	return Custom("size", func(value any) error {
		if err := Int().Validate(value); err != nil {
			return err
		}
		var n float64
		switch v := value.(type) {
		case int:
			n = float64(v)
		case int8:
			n = float64(v)
		case int16:
			n = float64(v)
		case int32:
			n = float64(v)
		case int64:
			n = float64(v)
		case uint:
			n = float64(v)
		case uint8:
			n = float64(v)
		case uint16:
			n = float64(v)
		case uint32:
			n = float64(v)
		case uint64:
			n = float64(v)
		case float64:
			n = v
		}
		if n < 0 || n > float64(max) {
			return fmt.Errorf("must be between 0 and %d, got %v", max, value)
		}
		return nil
	})
}

// Word accepts non-empty strings made of ASCII letters only.
func Word() Type {
	return Custom("word", func(value any) error {
		return lettersOnly(value, false)
	})
}

// Pattern accepts non-empty strings made of ASCII letters and the '.' wildcard.
func Pattern() Type {
	return Custom("pattern", func(value any) error {
		return lettersOnly(value, true)
	})
}

// Normalize lower-cases a word or pattern that passed Word or Pattern.
func Normalize(s string) string {
	return strings.ToLower(s)
}

func lettersOnly(value any, wildcard bool) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case wildcard && c == '.':
		default:
			return fmt.Errorf("invalid character %q at position %d", c, i)
		}
	}
	return nil
}
