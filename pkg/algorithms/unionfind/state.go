package unionfind

import (
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Snapshot tags recorded by the disjoint set.
const (
	TagInit       domain.Tag = "INIT"
	TagFind       domain.Tag = "FIND"
	TagUnionApply domain.Tag = "UNION_APPLY"
	TagUnionSkip  domain.Tag = "UNION_SKIP"
	TagDone       domain.Tag = "DONE"
)

// None marks an unused element field in a State.
const None = -1

// State is the recorded view of a disjoint set at one instant.
type State struct {
	Parent []int `json:"parent"`
	Rank   []int `json:"rank"`
	Count  int   `json:"count"`

	// Focus holds the arguments of the operation (i for find, x and y for union).
	Focus []int `json:"focus,omitempty"`

	// Path is the chain of parent links followed by find, ending at Root.
	Path []int `json:"path,omitempty"`

	// Compressed lists the nodes re-pointed to Root by path compression.
	Compressed []int `json:"compressed,omitempty"`

	// Root is the root found by find, or the surviving root of a union.
	Root int `json:"root"`

	// Attached is the root placed under Root by a union.
	Attached int `json:"attached"`

	// Roots maps every element to its root (terminal snapshot only).
	Roots []int `json:"roots,omitempty"`
}

func cloneState(s State) State {
	s.Parent = slices.Clone(s.Parent)
	s.Rank = slices.Clone(s.Rank)
	s.Focus = slices.Clone(s.Focus)
	s.Path = slices.Clone(s.Path)
	s.Compressed = slices.Clone(s.Compressed)
	s.Roots = slices.Clone(s.Roots)
	return s
}
