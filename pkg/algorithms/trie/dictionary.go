package trie

import (
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/schema"
	"github.com/aretw0/stepwise/pkg/trace"
)

const alphabet = 26

type node struct {
	id       int
	char     byte
	isWord   bool
	fanout   int
	children [alphabet]*node
}

// Dictionary is a trie of lowercase words supporting '.' wildcard search.
// Nodes are created lazily and never removed.
type Dictionary struct {
	root  *node
	nodes int
	words int
}

// Edge describes one parent-child link of the trie.
type Edge struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Char   string `json:"char"`
	IsWord bool   `json:"is_word"` // whether To ends a word
}

// New creates an empty dictionary holding only the root node.
func New() *Dictionary {
	return &Dictionary{root: &node{}, nodes: 1}
}

// AddWord inserts word (letters only, case-insensitive) and returns its trace:
// one BUILD snapshot per letter, then MARK_WORD or DUPLICATE.
func (d *Dictionary) AddWord(word string) (*domain.Trace[State], error) {
	if err := schema.Word().Validate(word); err != nil {
		return nil, &schema.ValidationError{Key: "word", Reason: err.Error(), Value: word}
	}
	rec := newRecorder()
	d.addWord(rec, schema.Normalize(word))
	return rec.Trace(), nil
}

// Search reports whether some added word matches pattern, where '.' matches any
// single letter, and returns the trace of the backtracking search.
func (d *Dictionary) Search(pattern string) (bool, *domain.Trace[State], error) {
	if err := schema.Pattern().Validate(pattern); err != nil {
		return false, nil, &schema.ValidationError{Key: "pattern", Reason: err.Error(), Value: pattern}
	}
	rec := newRecorder()
	_, found := d.search(rec, schema.Normalize(pattern))
	return found, rec.Trace(), nil
}

// Nodes returns the number of nodes, root included.
func (d *Dictionary) Nodes() int {
	return d.nodes
}

// WordCount returns the number of distinct words added.
func (d *Dictionary) WordCount() int {
	return d.words
}

// Words returns every stored word in alphabetical order.
func (d *Dictionary) Words() []string {
	var words []string
	var walk func(n *node, prefix []byte)
	walk = func(n *node, prefix []byte) {
		if n.isWord {
			words = append(words, string(prefix))
		}
		for _, child := range n.children {
			if child != nil {
				walk(child, append(prefix, child.char))
			}
		}
	}
	walk(d.root, nil)
	return words
}

// Edges lists every parent-child link in depth-first, alphabetical order.
func (d *Dictionary) Edges() []Edge {
	var edges []Edge
	var walk func(n *node)
	walk = func(n *node) {
		for _, child := range n.children {
			if child == nil {
				continue
			}
			edges = append(edges, Edge{From: n.id, To: child.id, Char: string(child.char), IsWord: child.isWord})
			walk(child)
		}
	}
	walk(d.root)
	return edges
}

func newRecorder() *trace.Recorder[State] {
	return trace.NewRecorder(string(domain.AlgorithmTrie), cloneState)
}

func (d *Dictionary) state(op Operation, input string, index int, n *node, prefix string) State {
	st := State{
		Operation: op,
		Input:     input,
		Index:     index,
		NodeID:    n.id,
		Prefix:    prefix,
		IsWord:    n.isWord,
		Nodes:     d.nodes,
		Words:     d.words,
	}
	if n != d.root {
		st.Char = string(n.char)
	}
	return st
}

func (d *Dictionary) addWord(rec *trace.Recorder[State], word string) {
	n := d.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		child := n.children[c-'a']
		created := child == nil
		if created {
			child = &node{id: d.nodes, char: c}
			d.nodes++
			n.children[c-'a'] = child
			n.fanout++
		}

		st := d.state(OpAdd, word, i, child, word[:i+1])
		st.Created = created
		if created {
			rec.Recordf(TagBuild, st, "add(%q): created node %d for '%c' under node %d", word, child.id, c, n.id)
		} else {
			rec.Recordf(TagBuild, st, "add(%q): reused node %d for '%c'", word, child.id, c)
		}
		n = child
	}

	if n.isWord {
		rec.Recordf(TagDuplicate, d.state(OpAdd, word, len(word)-1, n, word), "add(%q): already present; nothing changed", word)
		return
	}
	n.isWord = true
	d.words++
	rec.Recordf(TagMarkWord, d.state(OpAdd, word, len(word)-1, n, word), "add(%q): marked node %d as the end of a word", word, n.id)
}

// search records SEARCH, the backtracking walk, then MATCH or NO_MATCH.
func (d *Dictionary) search(rec *trace.Recorder[State], pattern string) (string, bool) {
	rec.Recordf(TagSearch, d.state(OpSearch, pattern, -1, d.root, ""), "search(%q): start at the root", pattern)

	match, found := d.match(rec, pattern, d.root, 0, "")
	if found {
		n := d.root
		for i := 0; i < len(match); i++ {
			n = n.children[match[i]-'a']
		}
		st := d.state(OpSearch, pattern, len(pattern)-1, n, match)
		st.Found = true
		rec.Recordf(TagMatch, st, "search(%q): matched %q", pattern, match)
		return match, true
	}

	rec.Recordf(TagNoMatch, d.state(OpSearch, pattern, -1, d.root, ""), "search(%q): no word matches", pattern)
	return "", false
}

// match resolves pattern[i:] below n. It returns on the first full match,
// so sibling branches after a success are never visited or recorded.
func (d *Dictionary) match(rec *trace.Recorder[State], pattern string, n *node, i int, prefix string) (string, bool) {
	if i == len(pattern) {
		if n.isWord {
			return prefix, true
		}
		rec.Recordf(TagPrune, d.state(OpSearch, pattern, i-1, n, prefix),
			"search(%q): %q does not end a word; backtrack", pattern, prefix)
		return "", false
	}

	c := pattern[i]
	if c == '.' {
		if n.fanout == 0 {
			st := d.state(OpSearch, pattern, i, n, prefix)
			st.Char = "."
			st.Wildcard = true
			rec.Recordf(TagPrune, st, "search(%q): '.' at position %d but node %d has no children; backtrack", pattern, i, n.id)
			return "", false
		}
		for _, child := range n.children {
			if child == nil {
				continue
			}
			next := prefix + string(child.char)
			st := d.state(OpSearch, pattern, i, child, next)
			st.Wildcard = true
			rec.Recordf(TagTraverse, st, "search(%q): '.' at position %d tries '%c' (node %d)", pattern, i, child.char, child.id)
			if m, ok := d.match(rec, pattern, child, i+1, next); ok {
				return m, true
			}
		}
		return "", false
	}

	child := n.children[c-'a']
	if child == nil {
		st := d.state(OpSearch, pattern, i, n, prefix)
		st.Char = string(c)
		rec.Recordf(TagPrune, st, "search(%q): no '%c' below node %d; backtrack", pattern, c, n.id)
		return "", false
	}
	next := prefix + string(c)
	rec.Recordf(TagTraverse, d.state(OpSearch, pattern, i, child, next), "search(%q): follow '%c' to node %d", pattern, c, child.id)
	return d.match(rec, pattern, child, i+1, next)
}
