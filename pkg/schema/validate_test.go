package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
)

func TestValidate_Success(t *testing.T) {
	schema := Schema{
		"words":   Slice(Word()),
		"queries": Slice(Pattern()),
	}

	data := map[string]any{
		"words":   []any{"bad", "dad", "mad"},
		"queries": []string{"b..", ".ad"},
	}

	if err := Validate(schema, data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_MissingField(t *testing.T) {
	schema := Schema{
		"n":     Int(),
		"edges": Slice(Tuple(Int(), 2)),
	}

	data := map[string]any{
		"n": 5,
		// missing edges
	}

	err := Validate(schema, data)
	if err == nil {
		t.Fatal("Validate() should return error for missing field")
	}

	aggr, ok := err.(*AggregateError)
	if !ok {
		t.Fatalf("error should be *AggregateError, got %T", err)
	}

	if len(aggr.Errors) != 1 {
		t.Errorf("Validate() = %d errors, want 1", len(aggr.Errors))
	}

	validErr, ok := aggr.Errors[0].(*ValidationError)
	if !ok {
		t.Fatalf("error should be *ValidationError, got %T", aggr.Errors[0])
	}

	if validErr.Key != "edges" {
		t.Errorf("ValidationError.Key = %q, want %q", validErr.Key, "edges")
	}
	if validErr.Reason != "required" {
		t.Errorf("ValidationError.Reason = %q, want %q", validErr.Reason, "required")
	}
}

func TestValidate_MultipleErrorsAreOrdered(t *testing.T) {
	schema := Schema{
		"n":     Int(),
		"edges": Slice(Tuple(Int(), 2)),
	}

	data := map[string]any{
		"n":     "five",
		"edges": []any{[]any{1}},
		"extra": true,
	}

	errs := ValidationErrors(Validate(schema, data))
	if len(errs) != 3 {
		t.Fatalf("ValidationErrors() = %d errors, want 3", len(errs))
	}

	wantKeys := []string{"edges", "n", "extra"}
	for i, want := range wantKeys {
		var ve *ValidationError
		if !errors.As(errs[i], &ve) {
			t.Fatalf("errs[%d] should be *ValidationError, got %T", i, errs[i])
		}
		if ve.Key != want {
			t.Errorf("errs[%d].Key = %q, want %q", i, ve.Key, want)
		}
	}
}

func TestValidate_MatchesInvalidInput(t *testing.T) {
	err := Validate(Schema{"words": Slice(Word())}, map[string]any{"words": []any{"ok", "n0"}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("errors.Is(%v, ErrInvalidInput) = false, want true", err)
	}
	if ValidationErrors(errors.New("plain")) != nil {
		t.Error("ValidationErrors() should return nil for non-aggregate errors")
	}
}

func TestSchema_MarshalJSON(t *testing.T) {
	schema := Schema{
		"n":     Int(),
		"edges": Slice(Tuple(Int(), 2)),
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["n"] != "int" || got["edges"] != "[(int, int)]" {
		t.Errorf("MarshalJSON() = %s", data)
	}
}
