package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/schema"
)

// RunFunc runs one algorithm over an already validated input.
type RunFunc func(input map[string]any) (*domain.Trace[any], error)

// Entry describes a registered algorithm.
type Entry struct {
	Algorithm   domain.Algorithm
	Description string
	Schema      schema.Schema
	Run         RunFunc
}

// Info is the serializable description of an Entry.
type Info struct {
	Name        domain.Algorithm  `json:"name"`
	Description string            `json:"description"`
	Input       map[string]string `json:"input"` // field -> type name
}

// Info describes the entry without its run function.
func (e Entry) Info() Info {
	fields := make(map[string]string, len(e.Schema))
	for name, typ := range e.Schema {
		fields[name] = typ.Name()
	}
	return Info{Name: e.Algorithm, Description: e.Description, Input: fields}
}

// Describe returns the Info of every entry, in order.
func Describe(entries []Entry) []Info {
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Info())
	}
	return out
}

// Registry manages the available algorithms.
type Registry struct {
	mu      sync.RWMutex
	entries map[domain.Algorithm]Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[domain.Algorithm]Entry),
	}
}

// Register adds an algorithm to the registry.
// If an entry with the same algorithm exists, it is overwritten.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Algorithm] = e
}

// Lookup returns the entry for alg or an error matching domain.ErrUnknownAlgorithm.
func (r *Registry) Lookup(alg domain.Algorithm) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[alg]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, alg)
	}
	return e, nil
}

// Entries returns every registered entry ordered by algorithm name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.Algorithm < b.Algorithm:
			return -1
		case a.Algorithm > b.Algorithm:
			return 1
		}
		return 0
	})
	return out
}

// Validate checks input against the algorithm's schema without running it.
func (r *Registry) Validate(alg domain.Algorithm, input map[string]any) error {
	e, err := r.Lookup(alg)
	if err != nil {
		return err
	}
	return schema.Validate(e.Schema, input)
}

// Execute validates input and runs the algorithm.
func (r *Registry) Execute(alg domain.Algorithm, input map[string]any) (*domain.Trace[any], error) {
	e, err := r.Lookup(alg)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(e.Schema, input); err != nil {
		return nil, err
	}
	return e.Run(input)
}
