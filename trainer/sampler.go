package trainer

import (
	"github.com/neurlang/ner/classifier"
	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/features"
	"github.com/neurlang/ner/parallel"
	"github.com/neurlang/ner/segmenter"
)

const (
	kindGold     = "gold"
	kindDetected = "detected"
	kindNearMiss = "near_miss"
)

// candidate is a segment the classifier is trained on.
type candidate struct {
	span  datasets.Span
	label int
	kind  string
}

// candidates lists the classifier segments of one sentence of n tokens: every
// gold span with its label, then every detected span that is not gold, then
// the one token extensions and contractions of each gold span. The last two
// groups are labeled datasets.NotEntity. No span is listed twice.
func candidates(n int, gold []datasets.Span, ids []int, detected []datasets.Span) []candidate {
	size := 5*len(gold) + len(detected)
	seen := make(map[datasets.Span]bool, size)
	out := make([]candidate, 0, size)
	add := func(s datasets.Span, label int, kind string) {
		if s.Start < 0 || s.End > n || s.End <= s.Start || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, candidate{span: s, label: label, kind: kind})
	}
	for i, s := range gold {
		add(s, ids[i], kindGold)
	}
	for _, s := range detected {
		add(s, datasets.NotEntity, kindDetected)
	}
	for _, s := range gold {
		add(datasets.Span{Start: s.Start - 1, End: s.End}, datasets.NotEntity, kindNearMiss)
		add(datasets.Span{Start: s.Start, End: s.End + 1}, datasets.NotEntity, kindNearMiss)
		if s.Len() > 1 {
			add(datasets.Span{Start: s.Start + 1, End: s.End}, datasets.NotEntity, kindNearMiss)
			add(datasets.Span{Start: s.Start, End: s.End - 1}, datasets.NotEntity, kindNearMiss)
		}
	}
	return out
}

// sample builds the classifier training set, sentence by sentence in corpus
// order.
func sample(fb *features.Builder, seg *segmenter.Model, sentences []datasets.Sentence, xs [][]features.Vector, threads int) []classifier.Sample {
	per := make([][]candidate, len(sentences))
	vecs := make([][]features.Vector, len(sentences))
	parallel.ForEach(len(sentences), threads, func(i int) {
		s := sentences[i]
		per[i] = candidates(len(s.Tokens), s.Spans, s.IDs, seg.Segment(xs[i]))
		vecs[i] = make([]features.Vector, len(per[i]))
		for j, c := range per[i] {
			vecs[i][j] = fb.Segment(s.Tokens, c.span)
		}
	})

	var out []classifier.Sample
	counts := make(map[string]int, 3)
	for i := range per {
		for j, c := range per[i] {
			out = append(out, classifier.Sample{X: vecs[i][j], Label: c.label})
			counts[c.kind]++
		}
	}
	for kind, n := range counts {
		segmentSamples.WithLabelValues(kind).Add(float64(n))
	}
	return out
}
