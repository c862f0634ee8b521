package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scenario"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// Render runs sc and draws the structure as it was at the given step.
// A negative step selects the last snapshot.
func Render(sc domain.Scenario, step int) (string, error) {
	tr, err := scenario.Run(sc)
	if err != nil {
		return "", err
	}
	if step < 0 {
		step = tr.Len() - 1
	}
	snap, ok := tr.At(step)
	if !ok {
		return "", fmt.Errorf("%w: step %d not in [0, %d)", domain.ErrInvalidPosition, step, tr.Len())
	}

	switch st := snap.State.(type) {
	case unionfind.State:
		return GenerateUnionFind(st, UnionFindOverlay(st)), nil
	case trie.State:
		var in scenario.TrieInput
		if err := scenario.Decode(sc.Input, &in); err != nil {
			return "", err
		}
		d := trie.New()
		for _, w := range in.Words {
			if _, err := d.AddWord(w); err != nil {
				return "", err
			}
		}
		edges := d.Edges()
		return GenerateTrie(edges, st, TrieOverlay(edges, st)), nil
	case toposort.State:
		return GenerateToposort(st, ToposortOverlay(st)), nil
	default:
		return "", fmt.Errorf("no graph for state %T", snap.State)
	}
}

// GenerateUnionFind draws the disjoint-set forest, children pointing at parents.
// Roots are drawn as circles.
func GenerateUnionFind(st unionfind.State, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph BT\n")

	for i, p := range st.Parent {
		id := elementID(i)
		if p == i {
			fmt.Fprintf(&sb, "    %s((\"%d\"))\n", id, i)
			continue
		}
		fmt.Fprintf(&sb, "    %s[\"%d\"]\n", id, i)
	}
	for i, p := range st.Parent {
		if p != i {
			fmt.Fprintf(&sb, "    %s --> %s\n", elementID(i), elementID(p))
		}
	}

	writeOverlay(&sb, overlay)
	return sb.String()
}

// UnionFindOverlay highlights the find path, or the two roots of a union.
func UnionFindOverlay(st unionfind.State) *GraphOverlay {
	if st.Root == unionfind.None {
		return nil
	}
	o := &GraphOverlay{CurrentNode: elementID(st.Root)}
	for _, i := range st.Path {
		o.VisitedNodes = append(o.VisitedNodes, elementID(i))
	}
	if st.Attached != unionfind.None {
		o.VisitedNodes = append(o.VisitedNodes, elementID(st.Attached))
	}
	return o
}

// GenerateTrie draws the nodes that existed at st (IDs below st.Nodes).
// Word-ending nodes are drawn as double circles.
func GenerateTrie(edges []trie.Edge, st trie.State, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	fmt.Fprintf(&sb, "    %s((\"root\"))\n", trieID(0))

	for _, e := range edges {
		if e.To >= st.Nodes {
			continue
		}
		if e.IsWord {
			fmt.Fprintf(&sb, "    %s(((\"%s\")))\n", trieID(e.To), e.Char)
		} else {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", trieID(e.To), e.Char)
		}
		fmt.Fprintf(&sb, "    %s --> %s\n", trieID(e.From), trieID(e.To))
	}

	writeOverlay(&sb, overlay)
	return sb.String()
}

// TrieOverlay highlights the nodes spelling st.Prefix, ending at st.NodeID.
func TrieOverlay(edges []trie.Edge, st trie.State) *GraphOverlay {
	children := make(map[int]map[string]int)
	for _, e := range edges {
		if children[e.From] == nil {
			children[e.From] = make(map[string]int)
		}
		children[e.From][e.Char] = e.To
	}

	o := &GraphOverlay{CurrentNode: trieID(st.NodeID)}
	n := 0
	for _, c := range st.Prefix {
		next, ok := children[n][string(c)]
		if !ok {
			break
		}
		o.VisitedNodes = append(o.VisitedNodes, trieID(n))
		n = next
	}
	return o
}

// GenerateToposort draws the character graph. Placed characters are drawn
// as circles and the edge being handled is thickened.
func GenerateToposort(st toposort.State, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[string]string, len(st.Chars))
	for i, c := range st.Chars {
		ids[c] = fmt.Sprintf("c%d", i)
	}

	for _, c := range st.Chars {
		label := fmt.Sprintf("%s <br/> in=%d", escapeLabel(c), st.InDegree[c])
		if strings.Contains(st.Order, c) {
			fmt.Fprintf(&sb, "    %s((\"%s\"))\n", ids[c], label)
		} else {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", ids[c], label)
		}
	}

	link := 0
	highlight := -1
	for _, from := range st.Chars {
		for _, to := range st.Adjacency[from] {
			fmt.Fprintf(&sb, "    %s --> %s\n", ids[from], ids[to])
			if len(st.Edge) == 2 && st.Edge[0] == from && st.Edge[1] == to {
				highlight = link
			}
			link++
		}
	}
	if highlight >= 0 {
		fmt.Fprintf(&sb, "    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", highlight)
	}

	writeOverlay(&sb, overlay)

	if len(st.Remaining) > 0 {
		sb.WriteString("    classDef cycle fill:#ffcdd2,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		for _, c := range st.Remaining {
			fmt.Fprintf(&sb, "    class %s cycle;\n", ids[c])
		}
	}
	return sb.String()
}

// ToposortOverlay marks placed and queued characters as visited and the
// dequeued character as current.
func ToposortOverlay(st toposort.State) *GraphOverlay {
	ids := make(map[string]string, len(st.Chars))
	for i, c := range st.Chars {
		ids[c] = fmt.Sprintf("c%d", i)
	}

	o := &GraphOverlay{}
	for _, c := range st.Order {
		o.VisitedNodes = append(o.VisitedNodes, ids[string(c)])
	}
	for _, c := range st.Queue {
		o.VisitedNodes = append(o.VisitedNodes, ids[c])
	}
	if st.Current != "" {
		o.CurrentNode = ids[st.Current]
	}
	if len(o.VisitedNodes) == 0 && o.CurrentNode == "" {
		return nil
	}
	return o
}

func writeOverlay(sb *strings.Builder, overlay *GraphOverlay) {
	if overlay == nil {
		return
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	visitedSet := make(map[string]bool)
	for _, id := range overlay.VisitedNodes {
		safeID := sanitizeMermaidID(id)
		if !visitedSet[safeID] && safeID != "" && id != overlay.CurrentNode {
			visitedSet[safeID] = true
			fmt.Fprintf(sb, "    class %s visited;\n", safeID)
		}
	}

	if overlay.CurrentNode != "" {
		fmt.Fprintf(sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
	}
}

func elementID(i int) string {
	return fmt.Sprintf("e%d", i)
}

func trieID(i int) string {
	return fmt.Sprintf("t%d", i)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	return strings.ReplaceAll(s, ">", "#gt;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
