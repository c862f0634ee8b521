package domain

// Scenario is a named algorithm invocation with its raw, not yet validated input.
// Input is decoded per algorithm (see pkg/scenario).
type Scenario struct {
	Name      string         `json:"name,omitempty" yaml:"name"`
	Algorithm Algorithm      `json:"algorithm" yaml:"algorithm"`
	Input     map[string]any `json:"input" yaml:"input"`
}

// Clone returns a deep copy of the scenario, including nested input values.
func (s Scenario) Clone() Scenario {
	out := s
	if s.Input != nil {
		out.Input = cloneValue(s.Input).(map[string]any)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	case []int:
		return append([]int(nil), val...)
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
