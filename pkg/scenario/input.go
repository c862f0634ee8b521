package scenario

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// UnionFindInput is the input of a union-find scenario.
type UnionFindInput struct {
	N     int     `mapstructure:"n" json:"n"`
	Edges [][]int `mapstructure:"edges" json:"edges"`
}

// Pairs converts the validated edge list into index pairs.
func (in UnionFindInput) Pairs() [][2]int {
	pairs := make([][2]int, len(in.Edges))
	for i, e := range in.Edges {
		pairs[i] = [2]int{e[0], e[1]}
	}
	return pairs
}

// TrieInput is the input of a trie scenario.
type TrieInput struct {
	Words   []string `mapstructure:"words" json:"words"`
	Queries []string `mapstructure:"queries" json:"queries"`
}

// TopologicalInput is the input of a topological-sort scenario.
type TopologicalInput struct {
	Words []string `mapstructure:"words" json:"words"`
}

// Decode copies a raw input map into out, rejecting fields out does not declare.
func Decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
