/*
Package trace records algorithm runs and replays them.

A Recorder is handed to an instrumented algorithm, which calls Record at every
state-changing or decision point. The algorithm runs to completion before anyone
looks at the result; the frozen Trace is then wrapped by a Stepper, the only
interface a presentation layer needs:

	rec := trace.NewRecorder("union-find", cloneState)
	// ... algorithm calls rec.Record(tag, description, state) ...
	st := trace.NewStepper(rec.Trace())
	for {
		snap, ok := st.Advance()
		if !ok {
			break // finished
		}
		render(snap)
	}
*/
package trace
