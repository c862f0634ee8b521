package trie

import (
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Snapshot tags recorded by the dictionary.
const (
	TagBuild     domain.Tag = "BUILD"
	TagMarkWord  domain.Tag = "MARK_WORD"
	TagDuplicate domain.Tag = "DUPLICATE"
	TagSearch    domain.Tag = "SEARCH"
	TagTraverse  domain.Tag = "TRAVERSE"
	TagPrune     domain.Tag = "PRUNE"
	TagMatch     domain.Tag = "MATCH"
	TagNoMatch   domain.Tag = "NO_MATCH"
	TagSummary   domain.Tag = "SUMMARY"
)

// Operation names the dictionary operation a snapshot belongs to.
type Operation string

const (
	OpAdd     Operation = "add"
	OpSearch  Operation = "search"
	OpSummary Operation = "summary"
)

// QueryResult is the outcome of one search in a BuildAndSearch run.
type QueryResult struct {
	Pattern string `json:"pattern"`
	Found   bool   `json:"found"`
	Match   string `json:"match,omitempty"`
}

// State is the recorded view of the dictionary at one instant.
type State struct {
	Operation Operation `json:"operation"`

	// Input is the word being added or the pattern being searched.
	Input string `json:"input,omitempty"`

	// Index is the position in Input being handled (-1 at the root).
	Index int `json:"index"`

	// NodeID is the node currently visited (0 is the root).
	NodeID int    `json:"node_id"`
	Char   string `json:"char,omitempty"`
	Prefix string `json:"prefix"`
	IsWord bool   `json:"is_word"`

	// Created is set on BUILD snapshots that allocated a new node.
	Created bool `json:"created,omitempty"`

	// Wildcard is set when the step was taken on behalf of a '.'.
	Wildcard bool `json:"wildcard,omitempty"`

	// Found is the search result (terminal search snapshots).
	Found bool `json:"found"`

	// Nodes and Words count the dictionary contents at this instant.
	// Node IDs are assigned in creation order, so IDs below Nodes existed at this step.
	Nodes int `json:"nodes"`
	Words int `json:"words"`

	// Results lists every query outcome (SUMMARY snapshot only).
	Results []QueryResult `json:"results,omitempty"`
}

func cloneState(s State) State {
	s.Results = slices.Clone(s.Results)
	return s
}
