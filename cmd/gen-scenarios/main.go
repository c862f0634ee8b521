package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scenario"
	"gopkg.in/yaml.v3"
)

func main() {
	targetDir := "examples"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	fmt.Printf("Generating scenario files in: %s\n", targetDir)

	files := map[string][]domain.Scenario{
		"union-find": {
			{
				Name:      "components",
				Algorithm: domain.AlgorithmUnionFind,
				Input:     map[string]any{"n": 5, "edges": [][]int{{0, 1}, {1, 2}, {3, 4}}},
			},
			{
				Name:      "redundant-edges",
				Algorithm: domain.AlgorithmUnionFind,
				Input:     map[string]any{"n": 4, "edges": [][]int{{0, 1}, {1, 0}, {2, 3}, {0, 3}, {1, 2}}},
			},
		},
		"trie": {
			{
				Name:      "dictionary",
				Algorithm: domain.AlgorithmTrie,
				Input: map[string]any{
					"words":   []string{"bad", "dad", "mad"},
					"queries": []string{"pad", "bad", ".ad", "b.."},
				},
			},
			{
				Name:      "prefixes",
				Algorithm: domain.AlgorithmTrie,
				Input: map[string]any{
					"words":   []string{"a", "ab", "abc"},
					"queries": []string{"ab", "a.", "...", "...."},
				},
			},
		},
		"topological-sort": {
			{
				Name:      "alien-alphabet",
				Algorithm: domain.AlgorithmTopologicalSort,
				Input:     map[string]any{"words": []string{"wrt", "wrf", "er", "ett", "rftt"}},
			},
			{
				Name:      "two-letters",
				Algorithm: domain.AlgorithmTopologicalSort,
				Input:     map[string]any{"words": []string{"z", "x"}},
			},
			{
				Name:      "cycle",
				Algorithm: domain.AlgorithmTopologicalSort,
				Input:     map[string]any{"words": []string{"z", "x", "z"}},
			},
		},
	}

	for name, scenarios := range files {
		dir := filepath.Join(targetDir, name)
		check(os.MkdirAll(dir, 0755))

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		check(enc.Encode(scenario.File{Scenarios: scenarios}))
		check(enc.Close())

		// Run what the loader reads back so a broken file never lands on disk.
		parsed, err := scenario.Parse(buf.Bytes(), ".yaml")
		check(err)
		for _, sc := range parsed {
			tr, err := scenario.Run(sc)
			check(err)
			last, _ := tr.Last()
			fmt.Printf("  %-16s %-16s %3d snapshots, ends %s\n", name, sc.Name, tr.Len(), last.Tag)
		}

		check(os.WriteFile(filepath.Join(dir, "scenarios.yaml"), buf.Bytes(), 0644))
	}

	fmt.Println("Done. Verify contents in", targetDir)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
