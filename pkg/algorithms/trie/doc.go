// Package trie implements an instrumented word dictionary with wildcard search.
//
// Words are stored one lowercase letter per edge. Search patterns may contain
// '.', which matches exactly one letter; it is resolved by backtracking over the
// children that actually exist, in alphabetical order, and stops at the first match.
// Every node visited and every branch abandoned is recorded.
package trie
