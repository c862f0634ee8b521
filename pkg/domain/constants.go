package domain

// Algorithm names a supported instrumented algorithm.
type Algorithm string

const (
	AlgorithmUnionFind       Algorithm = "union-find"
	AlgorithmTrie            Algorithm = "trie"
	AlgorithmTopologicalSort Algorithm = "topological-sort"
)

// SupportedAlgorithms lists every algorithm a Scenario may name, in display order.
func SupportedAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmUnionFind, AlgorithmTrie, AlgorithmTopologicalSort}
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	for _, known := range SupportedAlgorithms() {
		if a == known {
			return true
		}
	}
	return false
}
