package domain

// Tag identifies the phase or action a Snapshot records (e.g. FIND, KAHN_INIT, PRUNE).
// Each algorithm package declares its own set.
type Tag string

// Snapshot is one recorded instant of an algorithm run.
// State must never alias the live working structures of the algorithm.
type Snapshot[S any] struct {
	// Step is the zero-based position of the snapshot in its trace.
	Step int `json:"step"`

	// Tag is the algorithm-specific phase identifier.
	Tag Tag `json:"tag"`

	// Description explains the transition that produced this snapshot.
	Description string `json:"description"`

	// State is an independent copy of the algorithm state at this instant.
	State S `json:"state"`
}
