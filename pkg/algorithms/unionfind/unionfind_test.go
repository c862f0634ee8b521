package unionfind_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/stepwise/pkg/algorithms/unionfind"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Scenario(t *testing.T) {
	tr, err := unionfind.Run(5, [][2]int{{0, 1}, {1, 2}, {3, 4}})
	require.NoError(t, err)

	assert.Equal(t, []domain.Tag{
		unionfind.TagInit,
		unionfind.TagFind, unionfind.TagFind, unionfind.TagUnionApply,
		unionfind.TagFind, unionfind.TagFind, unionfind.TagUnionApply,
		unionfind.TagFind, unionfind.TagFind, unionfind.TagUnionApply,
		unionfind.TagDone,
	}, tr.Tags())

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.State.Count)
	assert.Equal(t, []int{0, 0, 0, 3, 3}, last.State.Roots)
	assert.Equal(t, []int{0, 0, 0, 3, 3}, last.State.Parent)
	assert.Equal(t, []int{1, 0, 0, 1, 0}, last.State.Rank)

	t.Run("Snapshots are values", func(t *testing.T) {
		first, _ := tr.At(0)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, first.State.Parent)
		assert.Equal(t, 5, first.State.Count)

		applied, _ := tr.At(3)
		assert.Equal(t, []int{0, 0, 2, 3, 4}, applied.State.Parent)
		assert.Equal(t, 0, applied.State.Root)
		assert.Equal(t, 1, applied.State.Attached)
		assert.Equal(t, 4, applied.State.Count)
	})
}

func TestRun_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges [][2]int
	}{
		{"negative size", -1, nil},
		{"size over the limit", unionfind.MaxElements + 1, nil},
		{"size that cannot be allocated", 1 << 62, nil},
		{"index too large", 3, [][2]int{{0, 3}}},
		{"negative index", 3, [][2]int{{-1, 0}}},
		{"bad edge after good ones", 3, [][2]int{{0, 1}, {1, 2}, {2, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := unionfind.Run(tt.n, tt.edges)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, tr, "no trace is built for rejected input")
		})
	}
}

func TestRun_Empty(t *testing.T) {
	tr, err := unionfind.Run(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{unionfind.TagInit, unionfind.TagDone}, tr.Tags())
}

func TestUnion_TieBreak(t *testing.T) {
	d, err := unionfind.New(4)
	require.NoError(t, err)

	merged, tr, err := d.Union(3, 1)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, []int{0, 3, 2, 3}, d.Parent(), "second root goes under the first on a tie")
	assert.Equal(t, []int{0, 0, 0, 1}, d.Rank())
	assert.Equal(t, 3, d.Count())

	last, _ := tr.Last()
	assert.Equal(t, unionfind.TagUnionApply, last.Tag)
	assert.Equal(t, []int{3, 1}, last.State.Focus)
}

func TestUnion_LowerRankGoesUnderHigher(t *testing.T) {
	d, _ := unionfind.New(3)
	_, _, err := d.Union(0, 1) // rank[0] = 1
	require.NoError(t, err)

	merged, _, err := d.Union(2, 0)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, []int{0, 0, 0}, d.Parent())
	assert.Equal(t, []int{1, 0, 0}, d.Rank(), "rank only grows on ties")
	assert.Equal(t, 1, d.Count())
}

func TestUnion_Idempotent(t *testing.T) {
	d, _ := unionfind.New(5)
	_, _, err := d.Union(1, 4)
	require.NoError(t, err)
	count, roots := d.Count(), d.Roots()

	merged, tr, err := d.Union(1, 4)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, count, d.Count())
	assert.Equal(t, roots, d.Roots())

	last, _ := tr.Last()
	assert.Equal(t, unionfind.TagUnionSkip, last.Tag)
	assert.Equal(t, 1, last.State.Root)
}

func TestUnion_RejectsOutOfRange(t *testing.T) {
	d, _ := unionfind.New(2)
	_, _, err := d.Union(0, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = d.Find(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []int{0, 1}, d.Parent(), "rejected calls leave the structure untouched")
}

func TestFind_PathCompression(t *testing.T) {
	d, _ := unionfind.New(4)
	for _, e := range [][2]int{{0, 1}, {2, 3}, {0, 2}} {
		_, _, err := d.Union(e[0], e[1])
		require.NoError(t, err)
	}
	require.Equal(t, []int{0, 0, 0, 2}, d.Parent())

	root, tr, err := d.Find(3)
	require.NoError(t, err)
	assert.Equal(t, 0, root)
	require.Equal(t, 1, tr.Len())

	snap, _ := tr.Last()
	assert.Equal(t, unionfind.TagFind, snap.Tag)
	assert.Equal(t, []int{3, 2, 0}, snap.State.Path)
	assert.Equal(t, []int{3}, snap.State.Compressed)
	assert.Equal(t, []int{0, 0, 0, 0}, snap.State.Parent)
	assert.Contains(t, snap.Description, "3 -> 2 -> 0")

	count := d.Count()
	again, tr2, err := d.Find(3)
	require.NoError(t, err)
	assert.Equal(t, root, again, "second find returns the same root")
	assert.Equal(t, count, d.Count(), "find never changes the count")

	snap2, _ := tr2.Last()
	assert.Equal(t, []int{3, 0}, snap2.State.Path)
	assert.Empty(t, snap2.State.Compressed)
}

func TestProperty_CountMatchesDistinctRoots(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.IntN(30)
		d, err := unionfind.New(n)
		require.NoError(t, err)

		edges := make([][2]int, rng.IntN(2*n))
		for k := range edges {
			edges[k] = [2]int{rng.IntN(n), rng.IntN(n)}
			_, _, err := d.Union(edges[k][0], edges[k][1])
			require.NoError(t, err)
		}

		distinct := make(map[int]struct{})
		for i := 0; i < n; i++ {
			root, _, err := d.Find(i)
			require.NoError(t, err)
			distinct[root] = struct{}{}
		}
		assert.Equal(t, len(distinct), d.Count(), "n=%d edges=%v", n, edges)

		for i, p := range d.Parent() {
			assert.True(t, p >= 0 && p < n, "parent[%d]=%d must be a valid index", i, p)
		}

		tr, err := unionfind.Run(n, edges)
		require.NoError(t, err)
		last, _ := tr.Last()
		assert.Equal(t, d.Count(), last.State.Count, "Run agrees with incremental unions")
	}
}

func TestRun_RecordedStatesAreImmutable(t *testing.T) {
	tr, err := unionfind.Run(3, [][2]int{{0, 1}})
	require.NoError(t, err)

	first, _ := tr.At(0)
	first.State.Parent[0] = 99
	tr.Snapshots()[0].State.Rank[1] = 42
	erased, _ := tr.Erase().At(0)
	erased.State.(unionfind.State).Parent[2] = 77

	snap, ok := trace.NewStepper(tr).Advance()
	require.True(t, ok)
	assert.Equal(t, unionfind.TagInit, snap.Tag)
	assert.Equal(t, []int{0, 1, 2}, snap.State.Parent)
	assert.Equal(t, []int{0, 0, 0}, snap.State.Rank)

	boxed, _ := tr.Erase().At(0)
	assert.Equal(t, []int{0, 1, 2}, boxed.State.(unionfind.State).Parent)
}
