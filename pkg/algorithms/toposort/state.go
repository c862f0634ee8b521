package toposort

import (
	"maps"
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Snapshot tags recorded by Order.
const (
	TagRegister      domain.Tag = "REGISTER"
	TagEdge          domain.Tag = "EDGE"
	TagEdgeDuplicate domain.Tag = "EDGE_DUPLICATE"
	TagNoDiff        domain.Tag = "NO_DIFF"
	TagInvalid       domain.Tag = "INVALID"
	TagKahnInit      domain.Tag = "KAHN_INIT"
	TagDequeue       domain.Tag = "DEQUEUE"
	TagDecrement     domain.Tag = "DECREMENT"
	TagDone          domain.Tag = "DONE"
	TagCycle         domain.Tag = "CYCLE"
)

// State is the recorded view of the dependency graph and sort at one instant.
type State struct {
	// Chars lists every distinct character in first-appearance order.
	Chars     []string            `json:"chars"`
	Adjacency map[string][]string `json:"adjacency"`
	InDegree  map[string]int      `json:"in_degree"`

	Queue []string `json:"queue"`
	Order string   `json:"order"`

	// Pair is the consecutive word pair being compared (construction phase).
	Pair []string `json:"pair,omitempty"`

	// Edge is the edge added, skipped or relaxed, as [from, to].
	Edge []string `json:"edge,omitempty"`

	// Current is the character just dequeued.
	Current string `json:"current,omitempty"`

	// Remaining lists the characters left unplaced by a cycle.
	Remaining []string `json:"remaining,omitempty"`

	Invalid bool `json:"invalid,omitempty"`
	Cycle   bool `json:"cycle,omitempty"`

	// Valid is set on the DONE snapshot: Order is a complete ordering.
	Valid bool `json:"valid"`
}

func cloneState(s State) State {
	s.Chars = slices.Clone(s.Chars)
	if s.Adjacency != nil {
		adj := make(map[string][]string, len(s.Adjacency))
		for k, v := range s.Adjacency {
			adj[k] = slices.Clone(v)
		}
		s.Adjacency = adj
	}
	s.InDegree = maps.Clone(s.InDegree)
	s.Queue = slices.Clone(s.Queue)
	s.Pair = slices.Clone(s.Pair)
	s.Edge = slices.Clone(s.Edge)
	s.Remaining = slices.Clone(s.Remaining)
	return s
}
