package features

import (
	"math"
	"testing"

	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/embedding"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	p, err := embedding.FromMap(2, map[string][]float64{
		"john":   {1, 0},
		"lives":  {0, 1},
		"in":     {0.5, 0.5},
		"boston": {2, -2},
	})
	require.NoError(t, err)
	return NewBuilder(p, Config{SparseDims: 1000, CacheSize: 16})
}

var sentence = []string{"John", "lives", "in", "Boston"}

func TestDims(t *testing.T) {
	b := newTestBuilder(t)
	require.Equal(t, 2, b.TokenDims())
	require.Equal(t, 1009, b.SparseDims())
	require.Equal(t, 6+1009, b.Dims())
}

func TestSentenceWindow(t *testing.T) {
	b := newTestBuilder(t)
	vs := b.Sentence(sentence)
	require.Len(t, vs, 4)

	require.Equal(t, []float64{1, 0, 0, 0, 0, 1}, vs[0].Dense)
	require.Equal(t, []float64{0.5, 0.5, 0, 1, 2, -2}, vs[2].Dense)
	require.Equal(t, []float64{2, -2, 0.5, 0.5, 0, 0}, vs[3].Dense)

	for i, v := range vs {
		require.Equal(t, uint32(bias), v.Sparse[0], "token %d", i)
		for _, j := range v.Sparse[1:] {
			require.NotZero(t, j)
			require.Less(t, int(j), b.SparseDims())
		}
	}
	require.Equal(t, 4, b.cache.Len())
}

func TestSentenceIsDeterministic(t *testing.T) {
	a := newTestBuilder(t).Sentence(sentence)
	b := newTestBuilder(t).Sentence(sentence)
	require.Equal(t, a, b)
}

func TestNeighbourIndicatorsAreSalted(t *testing.T) {
	b := newTestBuilder(t)
	cur := b.index(nil, b.token("Boston"), saltCur)
	next := b.index(nil, b.token("Boston"), saltNext)
	require.NotEqual(t, cur, next)
}

func TestSegment(t *testing.T) {
	b := newTestBuilder(t)
	v := b.Segment(sentence, datasets.Span{Start: 0, End: 2})
	require.Equal(t, []float64{0.5, 0.5, 0, 0, 0.5, 0.5}, v.Dense)
	require.Equal(t, uint32(bias), v.Sparse[0])

	last := b.Segment(sentence, datasets.Span{Start: 3, End: 4})
	require.Equal(t, []float64{2, -2, 0.5, 0.5, 0, 0}, last.Dense)
	require.NotEqual(t, v.Sparse, last.Sparse)
}

func TestIndicators(t *testing.T) {
	got := indicators("Boston", "english")
	require.Contains(t, got, "w=boston")
	require.Contains(t, got, "sh=Xx")
	require.Contains(t, got, "p1=b")
	require.Contains(t, got, "s3=ton")
	require.Contains(t, got, "cap")
	require.NotContains(t, got, "allcap")

	require.Contains(t, indicators("running", "english"), "st=run")
	require.Contains(t, indicators("2024", "english"), "digit")
	require.Contains(t, indicators("F-16", "english"), "hasdigit")
	require.Contains(t, indicators("F-16", "english"), "hyphen")
	require.Contains(t, indicators("NASA", "english"), "allcap")
	require.Contains(t, indicators("...", "english"), "punct")
	require.Contains(t, indicators("x", "no-such-language"), "w=x")
}

func TestShape(t *testing.T) {
	tests := map[string]string{
		"Boston":     "Xx",
		"McDonald's": "XxXx'x",
		"2024":       "d",
		"A1":         "Xd",
		"":           "",
	}
	for in, want := range tests {
		require.Equal(t, want, shape(in), in)
	}
}

func TestVector(t *testing.T) {
	v := Vector{Dense: []float64{1, 2}, Sparse: []uint32{0, 2, 2}}
	w := []float64{1, 1, 10, 20, 30}
	require.Equal(t, 3+10+30+30.0, v.Dot(w))

	v.AddTo(w, -1)
	require.Equal(t, []float64{0, -1, 9, 20, 28}, w)

	require.True(t, v.Finite())
	require.False(t, Vector{Dense: []float64{math.NaN()}}.Finite())
	require.False(t, Vector{Dense: []float64{math.Inf(1)}}.Finite())
}
