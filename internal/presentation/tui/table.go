package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/olekukonko/tablewriter"
)

// WriteState renders a snapshot state as one or more tables.
func WriteState(w io.Writer, state any) error {
	switch st := state.(type) {
	case unionfind.State:
		writeUnionFind(w, st)
	case trie.State:
		writeTrie(w, st)
	case toposort.State:
		writeToposort(w, st)
	default:
		return writeGeneric(w, state)
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(header)
	tbl.SetAutoWrapText(false)
	return tbl
}

func writeUnionFind(w io.Writer, st unionfind.State) {
	header := []string{"Element", "Parent", "Rank"}
	if st.Roots != nil {
		header = append(header, "Root")
	}
	tbl := newTable(w, header...)
	for i, p := range st.Parent {
		row := []string{strconv.Itoa(i), strconv.Itoa(p), strconv.Itoa(st.Rank[i])}
		if st.Roots != nil {
			row = append(row, strconv.Itoa(st.Roots[i]))
		}
		tbl.Append(row)
	}
	tbl.SetCaption(true, fmt.Sprintf("%d %s", st.Count, plural(st.Count, "set", "sets")))
	tbl.Render()
}

func writeTrie(w io.Writer, st trie.State) {
	tbl := newTable(w, "Field", "Value")
	tbl.Append([]string{"operation", string(st.Operation)})
	if st.Input != "" {
		tbl.Append([]string{"input", st.Input})
	}
	tbl.Append([]string{"node", strconv.Itoa(st.NodeID)})
	tbl.Append([]string{"prefix", strconv.Quote(st.Prefix)})
	tbl.Append([]string{"ends word", strconv.FormatBool(st.IsWord)})
	tbl.Append([]string{"nodes", strconv.Itoa(st.Nodes)})
	tbl.Append([]string{"words", strconv.Itoa(st.Words)})
	tbl.Render()

	if len(st.Results) == 0 {
		return
	}
	results := newTable(w, "Pattern", "Found", "Match")
	for _, r := range st.Results {
		results.Append([]string{r.Pattern, strconv.FormatBool(r.Found), r.Match})
	}
	results.Render()
}

func writeToposort(w io.Writer, st toposort.State) {
	tbl := newTable(w, "Char", "In-degree", "Edges to")
	for _, c := range st.Chars {
		tbl.Append([]string{c, strconv.Itoa(st.InDegree[c]), strings.Join(st.Adjacency[c], " ")})
	}

	caption := fmt.Sprintf("queue [%s], order %q", strings.Join(st.Queue, " "), st.Order)
	switch {
	case st.Cycle:
		caption = fmt.Sprintf("cycle among [%s]", strings.Join(st.Remaining, " "))
	case st.Invalid:
		caption = "invalid word order"
	}
	tbl.SetCaption(true, caption)
	tbl.Render()
}

// writeGeneric prints the JSON fields of any state as key/value rows.
func writeGeneric(w io.Writer, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := newTable(w, "Field", "Value")
	for _, k := range keys {
		v, _ := json.Marshal(fields[k])
		tbl.Append([]string{k, string(v)})
	}
	tbl.Render()
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
