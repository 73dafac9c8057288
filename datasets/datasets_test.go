package datasets

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func tokens(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "w"
	}
	return out
}

func TestOverlapsAnyEntity(t *testing.T) {
	in := NewInstance(tokens(10))
	require.NoError(t, in.AddEntity(Span{0, 3}, "A"))
	require.NoError(t, in.AddEntity(Span{5, 7}, "B"))

	tests := []struct {
		start, length int
		want          bool
	}{
		{3, 2, false},
		{2, 2, true},
		{7, 3, false},
		{6, 1, true},
		{0, 10, true},
	}
	for _, tc := range tests {
		got, err := in.OverlapsAnyEntity(tc.start, tc.length)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "[%d,+%d)", tc.start, tc.length)
	}

	_, err := in.OverlapsAnyEntity(3, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
	_, err = in.OverlapsAnyEntity(9, 2)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestAddEntityRejects(t *testing.T) {
	in := NewInstance(tokens(6))
	require.NoError(t, in.AddEntity(Span{1, 4}, "A"))

	for _, s := range []Span{{3, 5}, {-1, 1}, {2, 2}, {4, 3}, {5, 7}} {
		err := in.AddEntity(s, "B")
		require.True(t, errors.Is(err, ErrInvalidRange), "%v: %v", s, err)
	}
	require.Equal(t, 1, in.NumEntities())
	require.Equal(t, []Entity{{Span{1, 4}, "A"}}, in.Entities())

	require.NoError(t, in.AddEntityAt(4, 2, "B"))
	require.Equal(t, 2, in.NumEntities())
}

func TestInstanceCopiesTokens(t *testing.T) {
	src := []string{"a", "b"}
	in := NewInstance(src)
	src[0] = "z"
	require.Equal(t, []string{"a", "b"}, in.Tokens())

	got := in.Tokens()
	got[1] = "z"
	require.Equal(t, "b", in.Tokens()[1])
	require.Equal(t, 2, in.NumTokens())
}

func TestLabelsFirstSeenOrder(t *testing.T) {
	l := NewLabels()
	require.Equal(t, 1, l.Add("PERSON"))
	require.Equal(t, 2, l.Add("LOCATION"))
	require.Equal(t, 1, l.Add("PERSON"))
	require.Equal(t, []string{"PERSON", "LOCATION"}, l.Names())
	require.Equal(t, "LOCATION", l.Name(2))
	require.Equal(t, "", l.Name(NotEntity))
	require.Equal(t, "", l.Name(3))

	id, ok := l.ID("LOCATION")
	require.True(t, ok)
	require.Equal(t, 2, id)

	c := l.Clone()
	c.Add("ORG")
	require.Equal(t, 2, l.Len())
	require.Equal(t, 3, c.Len())
}

func TestCorpusAdd(t *testing.T) {
	c := NewCorpus()

	a := NewInstance([]string{"John", "met", "Mary"})
	require.NoError(t, a.AddEntity(Span{0, 1}, "PERSON"))
	require.NoError(t, a.AddEntity(Span{2, 3}, "PERSON"))
	c.Add(a)

	b := NewInstance([]string{"in", "Paris"})
	require.NoError(t, b.AddEntity(Span{1, 2}, "LOCATION"))
	c.Add(b)

	// later changes to the instance do not reach the corpus
	require.NoError(t, b.AddEntity(Span{0, 1}, "X"))

	require.Equal(t, 2, c.Len())
	require.Equal(t, []string{"PERSON", "LOCATION"}, c.Labels().Names())
	s := c.Sentences()
	require.Equal(t, []int{1, 1}, s[0].IDs)
	require.Equal(t, []Span{{1, 2}}, s[1].Spans)
	require.Equal(t, []int{2}, s[1].IDs)
}

func TestClassWeights(t *testing.T) {
	labels := []int{0, 0, 0, 0, 1, 1, 2, 5}
	require.Equal(t, []int{4, 2, 1, 0}, ClassCounts(labels, 4))
	require.Equal(t, 1, LeastCommon([]int{4, 2, 1, 0}))
	require.Equal(t, 0, LeastCommon([]int{0, 0}))
	require.Equal(t, []float64{0.25, 0.5, 1, 0}, ClassWeights(labels, 4))
}
