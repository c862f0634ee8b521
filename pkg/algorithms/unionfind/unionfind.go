package unionfind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/trace"
)

// DisjointSet partitions the elements 0..n-1 into disjoint sets.
// It is owned by a single run and is not safe for concurrent use.
type DisjointSet struct {
	parent []int
	rank   []int
	count  int
}

// MaxElements bounds the size of a set. Every snapshot copies the parent and
// rank arrays, so traces grow with n times the number of steps.
const MaxElements = 1 << 16

// New creates n singleton sets.
func New(n int) (*DisjointSet, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: size must not be negative, got %d", domain.ErrInvalidInput, n)
	}
	if n > MaxElements {
		return nil, fmt.Errorf("%w: size must be at most %d, got %d", domain.ErrInvalidInput, MaxElements, n)
	}
	d := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d, nil
}

// Len returns the number of elements.
func (d *DisjointSet) Len() int {
	return len(d.parent)
}

// Count returns the number of disjoint sets.
func (d *DisjointSet) Count() int {
	return d.count
}

// Parent returns a copy of the parent array.
func (d *DisjointSet) Parent() []int {
	return slices.Clone(d.parent)
}

// Rank returns a copy of the rank array.
func (d *DisjointSet) Rank() []int {
	return slices.Clone(d.rank)
}

// Roots returns the root of every element without compressing any path.
func (d *DisjointSet) Roots() []int {
	roots := make([]int, len(d.parent))
	for i := range d.parent {
		r := i
		for d.parent[r] != r {
			r = d.parent[r]
		}
		roots[i] = r
	}
	return roots
}

// Find returns the root of i, compressing the path it followed.
// The returned trace holds a single FIND snapshot.
func (d *DisjointSet) Find(i int) (int, *domain.Trace[State], error) {
	if err := d.check(i); err != nil {
		return None, nil, err
	}
	rec := newRecorder()
	root := d.find(rec, i)
	return root, rec.Trace(), nil
}

// Union merges the sets containing x and y. It reports whether a merge happened;
// false means both were already in the same set, which is a valid outcome.
func (d *DisjointSet) Union(x, y int) (bool, *domain.Trace[State], error) {
	if err := d.check(x); err != nil {
		return false, nil, err
	}
	if err := d.check(y); err != nil {
		return false, nil, err
	}
	rec := newRecorder()
	merged := d.union(rec, x, y)
	return merged, rec.Trace(), nil
}

func newRecorder() *trace.Recorder[State] {
	return trace.NewRecorder(string(domain.AlgorithmUnionFind), cloneState)
}

func (d *DisjointSet) check(i int) error {
	if i < 0 || i >= len(d.parent) {
		return fmt.Errorf("%w: index %d out of range [0, %d)", domain.ErrInvalidInput, i, len(d.parent))
	}
	return nil
}

// state exposes the live arrays; the recorder copies them.
func (d *DisjointSet) state() State {
	return State{
		Parent:   d.parent,
		Rank:     d.rank,
		Count:    d.count,
		Root:     None,
		Attached: None,
	}
}

func (d *DisjointSet) find(rec *trace.Recorder[State], i int) int {
	path := []int{i}
	root := i
	for d.parent[root] != root {
		root = d.parent[root]
		path = append(path, root)
	}

	var compressed []int
	for _, node := range path[:len(path)-1] {
		if d.parent[node] != root {
			d.parent[node] = root
			compressed = append(compressed, node)
		}
	}

	st := d.state()
	st.Focus = []int{i}
	st.Path = path
	st.Compressed = compressed
	st.Root = root
	rec.Record(TagFind, describeFind(i, path, compressed), st)
	return root
}

func (d *DisjointSet) union(rec *trace.Recorder[State], x, y int) bool {
	rootX := d.find(rec, x)
	rootY := d.find(rec, y)

	st := d.state()
	st.Focus = []int{x, y}

	if rootX == rootY {
		st.Root = rootX
		rec.Recordf(TagUnionSkip, st, "union(%d, %d): both already in the set rooted at %d; no change", x, y, rootX)
		return false
	}

	survivor, attached := rootX, rootY
	switch {
	case d.rank[rootX] < d.rank[rootY]:
		survivor, attached = rootY, rootX
	case d.rank[rootX] == d.rank[rootY]:
		d.rank[rootX]++
	}
	d.parent[attached] = survivor
	d.count--

	st = d.state()
	st.Focus = []int{x, y}
	st.Root = survivor
	st.Attached = attached
	rec.Recordf(TagUnionApply, st, "union(%d, %d): attached root %d under root %d (rank %d); %d %s remain",
		x, y, attached, survivor, d.rank[survivor], d.count, plural(d.count, "set", "sets"))
	return true
}

func describeFind(i int, path []int, compressed []int) string {
	if len(path) == 1 {
		return fmt.Sprintf("find(%d): %d is its own root", i, i)
	}
	hops := make([]string, len(path))
	for k, node := range path {
		hops[k] = fmt.Sprint(node)
	}
	msg := fmt.Sprintf("find(%d): followed %s, root is %d", i, strings.Join(hops, " -> "), path[len(path)-1])
	if len(compressed) == 0 {
		return msg + "; path already compressed"
	}
	return fmt.Sprintf("%s; re-pointed %v directly to %d", msg, compressed, path[len(path)-1])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
