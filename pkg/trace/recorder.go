package trace

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Recorder is the append-only builder of a Trace.
//
// Every recorded state passes through the clone function supplied at construction,
// so algorithms may hand over their live working structures. Recording never fails;
// a Recorder used by an algorithm that aborts still yields a valid prefix.
type Recorder[S any] struct {
	algorithm string
	clone     func(S) S
	snapshots []domain.Snapshot[S]
}

// NewRecorder creates a recorder for the named algorithm.
// clone must return a deep copy of its argument; nil is only safe for states
// without slices, maps or pointers.
func NewRecorder[S any](algorithm string, clone func(S) S) *Recorder[S] {
	return &Recorder[S]{
		algorithm: algorithm,
		clone:     clone,
	}
}

// Record appends a snapshot holding a copy of state.
func (r *Recorder[S]) Record(tag domain.Tag, description string, state S) {
	if r == nil {
		return
	}
	if r.clone != nil {
		state = r.clone(state)
	}
	r.snapshots = append(r.snapshots, domain.Snapshot[S]{
		Step:        len(r.snapshots),
		Tag:         tag,
		Description: description,
		State:       state,
	})
}

// Recordf is Record with a formatted description.
func (r *Recorder[S]) Recordf(tag domain.Tag, state S, format string, args ...any) {
	r.Record(tag, fmt.Sprintf(format, args...), state)
}

// Len returns the number of snapshots recorded so far.
func (r *Recorder[S]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.snapshots)
}

// Trace freezes what has been recorded so far. Later Record calls do not
// affect traces already returned.
func (r *Recorder[S]) Trace() *domain.Trace[S] {
	if r == nil {
		return domain.NewTrace[S]("", nil)
	}
	return domain.NewClonedTrace(r.algorithm, r.snapshots, r.clone)
}
