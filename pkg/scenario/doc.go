// Package scenario turns declarative algorithm invocations into traces.
//
// A scenario names an algorithm and carries its input as a loosely typed map, as
// read from YAML or JSON. Input is checked against the algorithm's schema, decoded
// into a typed input, and dispatched to the matching instrumented algorithm.
//
//	scenarios:
//	  - name: components
//	    algorithm: union-find
//	    input:
//	      n: 5
//	      edges: [[0, 1], [1, 2], [3, 4]]
package scenario
