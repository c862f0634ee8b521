// Package toposort derives a character ordering from a list of words sorted in
// an unknown alphabet, using Kahn's algorithm.
//
// The trace covers both phases: edge construction from consecutive word pairs,
// then the queue-driven sort. Ties between characters that are ready at the same
// time are broken by the order they entered the queue.
package toposort
