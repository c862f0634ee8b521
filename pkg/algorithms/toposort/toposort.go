package toposort

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/trace"
)

// graph is the character dependency graph built from the word list.
type graph struct {
	chars    []string
	adj      map[string][]string
	inDegree map[string]int

	queue []string
	order []string
}

func newGraph() *graph {
	return &graph{
		adj:      make(map[string][]string),
		inDegree: make(map[string]int),
	}
}

func (g *graph) register(c string) {
	if _, ok := g.inDegree[c]; ok {
		return
	}
	g.inDegree[c] = 0
	g.chars = append(g.chars, c)
}

func (g *graph) hasEdge(from, to string) bool {
	for _, t := range g.adj[from] {
		if t == to {
			return true
		}
	}
	return false
}

// state exposes the live graph; the recorder copies it.
func (g *graph) state() State {
	return State{
		Chars:     g.chars,
		Adjacency: g.adj,
		InDegree:  g.inDegree,
		Queue:     g.queue,
		Order:     strings.Join(g.order, ""),
	}
}

// Order derives the alphabet order implied by words and returns the full trace.
//
// The final snapshot is DONE (Valid, with the complete Order), CYCLE (empty Order,
// Remaining lists the characters that could not be placed) or INVALID (a word is
// followed by one of its own strict prefixes). Any list of strings is accepted.
func Order(words []string) *domain.Trace[State] {
	g := newGraph()
	rec := trace.NewRecorder(string(domain.AlgorithmTopologicalSort), cloneState)

	for _, w := range words {
		for _, r := range w {
			g.register(string(r))
		}
	}
	rec.Recordf(TagRegister, g.state(), "registered %d distinct %s with in-degree 0: %s",
		len(g.chars), plural(len(g.chars), "character", "characters"), list(g.chars))

	for i := 0; i+1 < len(words); i++ {
		if !g.compare(rec, words[i], words[i+1]) {
			return rec.Trace()
		}
	}

	g.sort(rec)
	return rec.Trace()
}

// compare derives at most one edge from a consecutive pair. It returns false,
// after recording INVALID, when the pair contradicts any ordering.
func (g *graph) compare(rec *trace.Recorder[State], earlier, later string) bool {
	a, b := []rune(earlier), []rune(later)
	st := g.state()
	st.Pair = []string{earlier, later}

	k := 0
	for k < len(a) && k < len(b) && a[k] == b[k] {
		k++
	}

	if k == len(a) || k == len(b) {
		if len(a) > len(b) {
			st.Invalid = true
			st.Order = ""
			rec.Recordf(TagInvalid, st, "%q comes after %q but is a prefix of it; no ordering is possible", later, earlier)
			return false
		}
		rec.Recordf(TagNoDiff, st, "%q and %q do not differ before one of them ends; no edge", earlier, later)
		return true
	}

	from, to := string(a[k]), string(b[k])
	st.Edge = []string{from, to}
	if g.hasEdge(from, to) {
		rec.Recordf(TagEdgeDuplicate, st, "%q vs %q: edge %s -> %s already known", earlier, later, from, to)
		return true
	}

	g.adj[from] = append(g.adj[from], to)
	g.inDegree[to]++

	st = g.state()
	st.Pair = []string{earlier, later}
	st.Edge = []string{from, to}
	rec.Recordf(TagEdge, st, "%q vs %q differ at position %d: added edge %s -> %s (in-degree of %s is now %d)",
		earlier, later, k, from, to, to, g.inDegree[to])
	return true
}

func (g *graph) sort(rec *trace.Recorder[State]) {
	for _, c := range g.chars {
		if g.inDegree[c] == 0 {
			g.queue = append(g.queue, c)
		}
	}
	rec.Recordf(TagKahnInit, g.state(), "initial queue of zero in-degree characters: %s", list(g.queue))

	for len(g.queue) > 0 {
		c := g.queue[0]
		g.queue = g.queue[1:]
		g.order = append(g.order, c)

		st := g.state()
		st.Current = c
		rec.Recordf(TagDequeue, st, "dequeued %s; order is now %q", c, st.Order)

		for _, to := range g.adj[c] {
			g.inDegree[to]--
			ready := g.inDegree[to] == 0
			if ready {
				g.queue = append(g.queue, to)
			}

			st := g.state()
			st.Current = c
			st.Edge = []string{c, to}
			if ready {
				rec.Recordf(TagDecrement, st, "edge %s -> %s: in-degree of %s drops to 0; enqueued", c, to, to)
			} else {
				rec.Recordf(TagDecrement, st, "edge %s -> %s: in-degree of %s drops to %d", c, to, to, g.inDegree[to])
			}
		}
	}

	if len(g.order) == len(g.chars) {
		st := g.state()
		st.Valid = true
		rec.Recordf(TagDone, st, "placed all %d %s: %q",
			len(g.chars), plural(len(g.chars), "character", "characters"), st.Order)
		return
	}

	var remaining []string
	for _, c := range g.chars {
		if g.inDegree[c] > 0 {
			remaining = append(remaining, c)
		}
	}
	st := g.state()
	st.Order = ""
	st.Cycle = true
	st.Remaining = remaining
	rec.Recordf(TagCycle, st, "cycle detected: placed %d of %d characters; %s never reached in-degree 0",
		len(g.order), len(g.chars), list(remaining))
}

func list(chars []string) string {
	if len(chars) == 0 {
		return "(none)"
	}
	return fmt.Sprintf("[%s]", strings.Join(chars, " "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
