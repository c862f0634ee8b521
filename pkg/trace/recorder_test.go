package trace_test

import (
	"slices"
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Values []int
}

func cloneCounter(s counterState) counterState {
	return counterState{Values: slices.Clone(s.Values)}
}

func TestRecorder_CopiesLiveState(t *testing.T) {
	rec := trace.NewRecorder("counter", cloneCounter)

	live := []int{0, 0, 0}
	for i := range live {
		live[i] = i + 1
		rec.Recordf("INC", counterState{Values: live}, "set index %d", i)
	}

	tr := rec.Trace()
	require.Equal(t, 3, tr.Len())
	assert.Equal(t, "counter", tr.Algorithm())

	first, ok := tr.At(0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 0, 0}, first.State.Values, "first snapshot must not see later writes")
	assert.Equal(t, "set index 0", first.Description)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, last.State.Values)
	assert.Equal(t, 2, last.Step)

	live[0] = 99
	again, _ := tr.At(2)
	assert.Equal(t, 1, again.State.Values[0], "recorded state must not alias the live slice")
}

func TestRecorder_TraceIsFrozen(t *testing.T) {
	rec := trace.NewRecorder("counter", cloneCounter)
	rec.Record("A", "first", counterState{})

	early := rec.Trace()
	rec.Record("B", "second", counterState{})

	assert.Equal(t, 1, early.Len())
	assert.Equal(t, 2, rec.Trace().Len())
	assert.Equal(t, []domain.Tag{"A", "B"}, rec.Trace().Tags())
}

func TestRecorder_NilIsInert(t *testing.T) {
	var rec *trace.Recorder[counterState]
	rec.Record("A", "ignored", counterState{})
	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, 0, rec.Trace().Len())
}
