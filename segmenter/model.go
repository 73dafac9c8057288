// Package segmenter finds entity boundaries. It is a label-agnostic BIO chunker:
// a linear chain model over the tags O, B and I, decoded with Viterbi.
package segmenter

import (
	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/features"
)

// Tag is the chunk tag of one token.
type Tag uint8

const (
	O Tag = iota // outside any entity
	B            // first token of an entity
	I            // continuation of an entity
)

const numTags = 3

func (t Tag) String() string {
	return [...]string{"O", "B", "I"}[t]
}

// allowed reports whether prev may be followed by next.
func allowed(prev, next Tag) bool {
	return !(prev == O && next == I)
}

// Model is a trained chunker. The weight layout is the emission weights of O,
// B and I, each dims long, followed by 9 transition and 3 start weights.
type Model struct {
	dims int
	w    []float64
}

func newModel(dims int) *Model {
	return &Model{dims: dims, w: make([]float64, size(dims))}
}

func size(dims int) int {
	return numTags*dims + numTags*numTags + numTags
}

// Dims is the feature vector length the model expects.
func (m *Model) Dims() int {
	return m.dims
}

// Weights returns a copy of the weight vector.
func (m *Model) Weights() []float64 {
	return append([]float64(nil), m.w...)
}

func emission(w []float64, dims int, t Tag) []float64 {
	return w[int(t)*dims : int(t+1)*dims]
}

func transition(dims int, prev, next Tag) int {
	return numTags*dims + int(prev)*numTags + int(next)
}

func start(dims int, t Tag) int {
	return numTags*dims + numTags*numTags + int(t)
}

// Tags decodes the best tag sequence of a sentence.
func (m *Model) Tags(xs []features.Vector) []Tag {
	return viterbi(m.w, m.dims, xs, nil)
}

// Segment returns the entity spans detected in a sentence.
func (m *Model) Segment(xs []features.Vector) []datasets.Span {
	return Spans(m.Tags(xs))
}

// viterbi returns the highest scoring tag sequence that never enters I from O
// or from the sentence start. When cost is set, cost(i, t) is added to the
// score of tagging token i with t. Ties go to the lower tag.
func viterbi(w []float64, dims int, xs []features.Vector, cost func(i int, t Tag) float64) []Tag {
	n := len(xs)
	if n == 0 {
		return nil
	}
	var (
		score = make([][numTags]float64, n)
		back  = make([][numTags]Tag, n)
		valid = make([][numTags]bool, n)
	)
	emit := func(i int, t Tag) float64 {
		s := xs[i].Dot(emission(w, dims, t))
		if cost != nil {
			s += cost(i, t)
		}
		return s
	}
	for t := O; t < numTags; t++ {
		if t == I {
			continue
		}
		score[0][t] = w[start(dims, t)] + emit(0, t)
		valid[0][t] = true
	}
	for i := 1; i < n; i++ {
		for t := O; t < numTags; t++ {
			found := false
			best, arg := 0.0, O
			for p := O; p < numTags; p++ {
				if !valid[i-1][p] || !allowed(p, t) {
					continue
				}
				s := score[i-1][p] + w[transition(dims, p, t)]
				if !found || s > best {
					best, arg, found = s, p, true
				}
			}
			if !found {
				continue
			}
			score[i][t] = best + emit(i, t)
			back[i][t] = arg
			valid[i][t] = true
		}
	}

	tags := make([]Tag, n)
	found := false
	for t := O; t < numTags; t++ {
		if valid[n-1][t] && (!found || score[n-1][t] > score[n-1][tags[n-1]]) {
			tags[n-1], found = t, true
		}
	}
	for i := n - 1; i > 0; i-- {
		tags[i-1] = back[i][tags[i]]
	}
	return tags
}

// phi adds scale times the joint feature vector of (xs, tags) into g.
func phi(g []float64, dims int, xs []features.Vector, tags []Tag, scale float64) {
	for i, t := range tags {
		xs[i].AddTo(emission(g, dims, t), scale)
		if i == 0 {
			g[start(dims, t)] += scale
		} else {
			g[transition(dims, tags[i-1], t)] += scale
		}
	}
}

// TagsOf encodes spans over n tokens as a tag sequence.
func TagsOf(n int, spans []datasets.Span) []Tag {
	tags := make([]Tag, n)
	for _, s := range spans {
		tags[s.Start] = B
		for i := s.Start + 1; i < s.End; i++ {
			tags[i] = I
		}
	}
	return tags
}

// Spans decodes a tag sequence into spans. A stray I opens a new span.
func Spans(tags []Tag) []datasets.Span {
	var out []datasets.Span
	begin := -1
	for i, t := range tags {
		switch {
		case t == B || (t == I && begin < 0):
			if begin >= 0 {
				out = append(out, datasets.Span{Start: begin, End: i})
			}
			begin = i
		case t == O && begin >= 0:
			out = append(out, datasets.Span{Start: begin, End: i})
			begin = -1
		}
	}
	if begin >= 0 {
		out = append(out, datasets.Span{Start: begin, End: len(tags)})
	}
	return out
}
