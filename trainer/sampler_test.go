package trainer

import (
	"testing"

	"github.com/neurlang/ner/datasets"
	"github.com/stretchr/testify/require"
)

func span(start, end int) datasets.Span {
	return datasets.Span{Start: start, End: end}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		gold     []datasets.Span
		ids      []int
		detected []datasets.Span
		want     []candidate
	}{
		{
			name:     "single token at the end",
			n:        4,
			gold:     []datasets.Span{span(3, 4)},
			ids:      []int{1},
			detected: []datasets.Span{span(3, 4), span(0, 1)},
			want: []candidate{
				{span(3, 4), 1, kindGold},
				{span(0, 1), datasets.NotEntity, kindDetected},
				{span(2, 4), datasets.NotEntity, kindNearMiss},
			},
		},
		{
			name: "multi token in the middle",
			n:    5,
			gold: []datasets.Span{span(1, 3)},
			ids:  []int{2},
			want: []candidate{
				{span(1, 3), 2, kindGold},
				{span(0, 3), datasets.NotEntity, kindNearMiss},
				{span(1, 4), datasets.NotEntity, kindNearMiss},
				{span(2, 3), datasets.NotEntity, kindNearMiss},
				{span(1, 2), datasets.NotEntity, kindNearMiss},
			},
		},
		{
			name: "near misses never shadow gold",
			n:    2,
			gold: []datasets.Span{span(0, 1), span(1, 2)},
			ids:  []int{1, 2},
			want: []candidate{
				{span(0, 1), 1, kindGold},
				{span(1, 2), 2, kindGold},
				{span(0, 2), datasets.NotEntity, kindNearMiss},
			},
		},
		{
			name:     "no gold",
			n:        3,
			detected: []datasets.Span{span(1, 2)},
			want:     []candidate{{span(1, 2), datasets.NotEntity, kindDetected}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, candidates(tc.n, tc.gold, tc.ids, tc.detected))
		})
	}
}
