package classifier

import (
	"context"
	"time"

	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/learning"
	"github.com/neurlang/ner/parallel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

type partial struct {
	grad       *mat.Dense
	loss       float64
	violations int
}

// Train fits a weighted multiclass hinge model to samples labeled in
// [0, classes). Each class is weighted by the count of the least common class
// over its own count, so the plentiful not-entity samples do not drown out the
// rare labels.
//
// Gradients are accumulated per partition and summed in partition order, so
// the result depends only on the inputs and h.Threads.
func Train(ctx context.Context, samples []Sample, classes, dims int, h learning.HyperParameters) (*Model, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.Wrap(learning.ErrTraining, "no segment samples")
	}
	if classes < 1 || dims < 1 {
		return nil, errors.Wrapf(learning.ErrTraining, "%d classes of %d dims", classes, dims)
	}
	labels := make([]int, len(samples))
	for i, s := range samples {
		if s.Label < 0 || s.Label >= classes {
			return nil, errors.Wrapf(learning.ErrTraining, "sample %d has label %d of %d", i, s.Label, classes)
		}
		if !s.X.Finite() {
			return nil, errors.Wrapf(learning.ErrTraining, "sample %d has a non-finite feature", i)
		}
		labels[i] = s.Label
	}

	var (
		log     = h.Log()
		m       = &Model{w: mat.NewDense(classes, dims, nil)}
		weights = datasets.ClassWeights(labels, classes)
		grad    = mat.NewDense(classes, dims, nil)
		parts   = parallel.Partition(len(samples), h.Threads)
		bufs    = make([]partial, len(parts))
	)
	for p := range bufs {
		bufs[p].grad = mat.NewDense(classes, dims, nil)
	}

	began := time.Now()
	for epoch := 1; epoch <= h.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grad.Zero()
		var (
			loss       float64
			violations int
		)
		err := parallel.Reduce(len(samples), h.Threads, func(part int, r parallel.Range) (*partial, error) {
			buf := &bufs[part]
			buf.grad.Zero()
			buf.loss, buf.violations = 0, 0
			for i := r.Start; i < r.End; i++ {
				s := samples[i]
				if l := m.step(s, weights[s.Label], buf.grad); l > 0 {
					buf.loss += l
					buf.violations++
				}
			}
			return buf, nil
		}, func(p *partial) {
			grad.Add(grad, p.grad)
			loss += p.loss
			violations += p.violations
		})
		if err != nil {
			return nil, err
		}

		log.Debug("classifier epoch",
			zap.Int("epoch", epoch),
			zap.Float64("loss", loss),
			zap.Int("violations", violations))
		if violations == 0 {
			break
		}

		rate := h.Rate(epoch)
		m.w.Scale(1-rate*h.Lambda, m.w)
		grad.Scale(rate/float64(len(samples)), grad)
		m.w.Add(m.w, grad)
		if err := learning.CheckFinite("classifier weights", m.w.RawMatrix().Data); err != nil {
			return nil, err
		}
	}
	log.Info("classifier trained",
		zap.Int("samples", len(samples)),
		zap.Int("classes", classes),
		zap.Duration("took", time.Since(began)))
	return m, nil
}

// step finds the loss augmented prediction of s and, on a margin violation,
// adds the weighted descent direction into g. It returns the weighted hinge
// loss.
func (m *Model) step(s Sample, weight float64, g *mat.Dense) float64 {
	scores := m.Scores(s.X)
	truth := scores[s.Label]
	for k := range scores {
		if k != s.Label {
			scores[k]++
		}
	}
	rival, augmented := argmax(scores)
	if rival == s.Label || augmented <= truth {
		return 0
	}
	s.X.AddTo(g.RawRowView(s.Label), weight)
	s.X.AddTo(g.RawRowView(rival), -weight)
	return weight * (augmented - truth)
}
