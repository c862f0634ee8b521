package trace

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Stepper is a forward-only cursor over a Trace.
// It is not safe for concurrent use; playback sessions serialize access (see pkg/session).
type Stepper[S any] struct {
	trace    *domain.Trace[S]
	position int
}

// NewStepper positions a cursor before the first snapshot of t.
// A nil trace behaves as an empty one.
func NewStepper[S any](t *domain.Trace[S]) *Stepper[S] {
	if t == nil {
		t = domain.NewTrace[S]("", nil)
	}
	return &Stepper[S]{trace: t, position: -1}
}

// Resume rebuilds a cursor at a known position, as saved by a playback session.
func Resume[S any](t *domain.Trace[S], position int) (*Stepper[S], error) {
	s := NewStepper(t)
	if position < -1 || position >= s.trace.Len() {
		return nil, fmt.Errorf("%w: %d not in [-1, %d)", domain.ErrInvalidPosition, position, s.trace.Len())
	}
	s.position = position
	return s, nil
}

// Advance moves to the next snapshot and returns it.
// At the end of the trace (or on an empty trace) it returns false and leaves
// the position unchanged.
func (s *Stepper[S]) Advance() (domain.Snapshot[S], bool) {
	if s.position+1 >= s.trace.Len() {
		return domain.Snapshot[S]{}, false
	}
	s.position++
	return s.trace.At(s.position)
}

// Current returns the snapshot under the cursor, or false before the first Advance.
func (s *Stepper[S]) Current() (domain.Snapshot[S], bool) {
	if s.position < 0 {
		return domain.Snapshot[S]{}, false
	}
	return s.trace.At(s.position)
}

// Reset moves the cursor back before the first snapshot.
func (s *Stepper[S]) Reset() {
	s.position = -1
}

// IsFinished reports whether the last snapshot is current.
// An empty trace is always finished.
func (s *Stepper[S]) IsFinished() bool {
	return s.position == s.trace.Len()-1
}

// Position returns the cursor (-1 before the first snapshot).
func (s *Stepper[S]) Position() int {
	return s.position
}

// Len returns the length of the underlying trace.
func (s *Stepper[S]) Len() int {
	return s.trace.Len()
}

// Trace returns the trace being replayed.
func (s *Stepper[S]) Trace() *domain.Trace[S] {
	return s.trace
}
