package domain

import "encoding/json"

// Trace is the ordered, finite sequence of Snapshots produced by one algorithm run.
// A Trace is read-only once built; use a Recorder (pkg/trace) to construct one.
type Trace[S any] struct {
	algorithm string
	snapshots []Snapshot[S]
	clone     func(S) S
}

// NewTrace freezes snapshots into a Trace.
// The slice is copied and every Step is renumbered to its position.
// States are handed out as stored, so S should hold no slices, maps or pointers;
// use NewClonedTrace otherwise.
func NewTrace[S any](algorithm string, snapshots []Snapshot[S]) *Trace[S] {
	return NewClonedTrace(algorithm, snapshots, nil)
}

// NewClonedTrace is NewTrace for states with reference fields. clone must return a
// deep copy; it is applied when the trace is built and to every state read back
// through At, Last, Snapshots and Erase, so no caller can alter a recorded snapshot.
func NewClonedTrace[S any](algorithm string, snapshots []Snapshot[S], clone func(S) S) *Trace[S] {
	t := &Trace[S]{algorithm: algorithm, clone: clone}
	t.snapshots = make([]Snapshot[S], len(snapshots))
	for i, s := range snapshots {
		s.Step = i
		t.snapshots[i] = t.copyOf(s)
	}
	return t
}

func (t *Trace[S]) copyOf(s Snapshot[S]) Snapshot[S] {
	if t.clone != nil {
		s.State = t.clone(s.State)
	}
	return s
}

// Algorithm returns the name of the algorithm that produced the trace.
func (t *Trace[S]) Algorithm() string {
	if t == nil {
		return ""
	}
	return t.algorithm
}

// Len returns the number of snapshots. A nil trace is empty.
func (t *Trace[S]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.snapshots)
}

// At returns the snapshot at index i.
func (t *Trace[S]) At(i int) (Snapshot[S], bool) {
	if i < 0 || i >= t.Len() {
		return Snapshot[S]{}, false
	}
	return t.copyOf(t.snapshots[i]), true
}

// Last returns the terminal snapshot, which carries the run's result.
func (t *Trace[S]) Last() (Snapshot[S], bool) {
	return t.At(t.Len() - 1)
}

// Snapshots returns a copy of the snapshot list.
func (t *Trace[S]) Snapshots() []Snapshot[S] {
	out := make([]Snapshot[S], t.Len())
	for i := range out {
		out[i] = t.copyOf(t.snapshots[i])
	}
	return out
}

// Tags returns the tag of every snapshot in order.
func (t *Trace[S]) Tags() []Tag {
	tags := make([]Tag, 0, t.Len())
	if t == nil {
		return tags
	}
	for _, s := range t.snapshots {
		tags = append(tags, s.Tag)
	}
	return tags
}

// Erase boxes every State as `any` so traces of different algorithms can share
// one Stepper, store or transport.
func (t *Trace[S]) Erase() *Trace[any] {
	if t == nil {
		return NewTrace[any]("", nil)
	}
	boxed := make([]Snapshot[any], len(t.snapshots))
	for i, s := range t.snapshots {
		boxed[i] = Snapshot[any]{
			Step:        s.Step,
			Tag:         s.Tag,
			Description: s.Description,
			State:       s.State,
		}
	}
	var clone func(any) any
	if t.clone != nil {
		clone = func(v any) any {
			if s, ok := v.(S); ok {
				return t.clone(s)
			}
			return v
		}
	}
	return NewClonedTrace(t.algorithm, boxed, clone)
}

type traceJSON[S any] struct {
	Algorithm string        `json:"algorithm"`
	Snapshots []Snapshot[S] `json:"snapshots"`
}

// MarshalJSON renders the trace as {"algorithm": ..., "snapshots": [...]}.
func (t *Trace[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceJSON[S]{
		Algorithm: t.Algorithm(),
		Snapshots: t.Snapshots(),
	})
}
