// Package classifier assigns entity labels to segments with a multiclass
// linear model, one weight row per label id including the not-entity id 0.
package classifier

import (
	"github.com/neurlang/ner/features"
	"gonum.org/v1/gonum/mat"
)

// Sample is a labeled segment.
type Sample struct {
	X     features.Vector
	Label int
}

type Model struct {
	w *mat.Dense
}

// Classes is the number of label ids the model scores.
func (m *Model) Classes() int {
	r, _ := m.w.Dims()
	return r
}

// Dims is the feature vector length the model expects.
func (m *Model) Dims() int {
	_, c := m.w.Dims()
	return c
}

// Weights returns a copy of the weight matrix.
func (m *Model) Weights() *mat.Dense {
	return mat.DenseCopyOf(m.w)
}

// Scores returns the score of every label id.
func (m *Model) Scores(x features.Vector) []float64 {
	out := make([]float64, m.Classes())
	for k := range out {
		out[k] = x.Dot(m.w.RawRowView(k))
	}
	return out
}

// Predict returns the best scoring label id and its score. Ties go to the lower
// id.
func (m *Model) Predict(x features.Vector) (int, float64) {
	return argmax(m.Scores(x))
}

func argmax(s []float64) (best int, score float64) {
	for k, v := range s {
		if k == 0 || v > score {
			best, score = k, v
		}
	}
	return
}
