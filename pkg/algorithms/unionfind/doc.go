// Package unionfind implements an instrumented disjoint-set forest with path
// compression and union by rank.
//
// Every Find records one FIND snapshot (path followed and nodes compressed);
// every Union records the two finds followed by UNION_APPLY or UNION_SKIP.
// On a rank tie the second argument's root is attached under the first's.
package unionfind
