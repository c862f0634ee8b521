package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/algorithms/toposort"
	"github.com/aretw0/stepwise/pkg/algorithms/trie"
	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestWriteState(t *testing.T) {
	uf, err := unionfind.Run(3, [][2]int{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	ufLast, _ := uf.Last()

	dict, err := trie.BuildAndSearch([]string{"bad"}, []string{"b.d", "x"})
	if err != nil {
		t.Fatal(err)
	}
	dictLast, _ := dict.Last()

	cycle, _ := toposort.Order([]string{"ab", "ba", "ab"}).Last()

	tests := []struct {
		name     string
		state    any
		contains []string
	}{
		{name: "Union-Find", state: ufLast.State, contains: []string{"ROOT", "2 sets"}},
		{name: "Trie Summary", state: dictLast.State, contains: []string{"summary", "b.d", "bad", "false"}},
		{name: "Toposort Cycle", state: cycle.State, contains: []string{"IN-DEGREE", "cycle among [a b]"}},
		{name: "Generic", state: map[string]int{"answer": 42}, contains: []string{"answer", "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tui.WriteState(&buf, tt.state); err != nil {
				t.Fatalf("WriteState() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("WriteState() missing %q\nGot:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestSnapshotMarkdown(t *testing.T) {
	md := tui.SnapshotMarkdown(domain.Snapshot[any]{Step: 2, Tag: "FIND", Description: "find(1): 1 is its own root"}, 8)
	if !strings.HasPrefix(md, "### Step 3 of 8 · `FIND`") {
		t.Errorf("unexpected heading: %q", md)
	}
	if !strings.Contains(md, "find(1): 1 is its own root") {
		t.Errorf("description missing: %q", md)
	}
}

func TestTagKind(t *testing.T) {
	tests := map[domain.Tag]string{
		"DONE":      tui.KindSuccess,
		"CYCLE":     tui.KindNegative,
		"PRUNE":     tui.KindNegative,
		"FIND":      tui.KindStep,
		"KAHN_INIT": tui.KindStep,
		"SOMETHING": tui.KindStep,
	}
	for tag, want := range tests {
		if got := tui.TagKind(tag); got != want {
			t.Errorf("TagKind(%s) = %s, want %s", tag, got, want)
		}
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	if strings.Count(buf.String(), "\n") < 6 {
		t.Errorf("banner too short:\n%s", buf.String())
	}
}
