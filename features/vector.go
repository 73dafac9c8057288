package features

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is a feature vector with a dense prefix and binary sparse indicators.
// In a weight vector, the sparse index j lives at len(Dense)+j.
type Vector struct {
	Dense  []float64
	Sparse []uint32
}

// Dot returns the inner product with the weights w.
func (v Vector) Dot(w []float64) float64 {
	d := len(v.Dense)
	s := floats.Dot(v.Dense, w[:d])
	for _, j := range v.Sparse {
		s += w[d+int(j)]
	}
	return s
}

// AddTo adds alpha*v into w.
func (v Vector) AddTo(w []float64, alpha float64) {
	d := len(v.Dense)
	floats.AddScaled(w[:d], alpha, v.Dense)
	for _, j := range v.Sparse {
		w[d+int(j)] += alpha
	}
}

// Finite reports whether the dense part holds no NaN or Inf.
func (v Vector) Finite() bool {
	for _, x := range v.Dense {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
