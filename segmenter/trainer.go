package segmenter

import (
	"context"
	"time"

	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/features"
	"github.com/neurlang/ner/learning"
	"github.com/neurlang/ner/parallel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// partial is one partition's share of an epoch.
type partial struct {
	grad     []float64
	loss     float64
	mistakes int
}

// Train fits a chunker to the gold spans of each sentence by subgradient
// descent on the margin rescaled structured hinge loss. Mistagging a token
// that belongs to an entity costs beta, mistagging any other token costs 1,
// so a small beta favours precision and a large one recall.
//
// Each epoch the sentences are split into h.Threads partitions whose gradients
// are summed in partition order, so the result depends only on the inputs and
// h.Threads. Training stops early once every sentence is decoded correctly
// under the loss augmented objective.
func Train(ctx context.Context, xs [][]features.Vector, gold [][]datasets.Span, dims int, beta float64, h learning.HyperParameters) (*Model, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(xs) != len(gold) {
		return nil, errors.Wrapf(learning.ErrTraining, "%d sentences but %d span lists", len(xs), len(gold))
	}
	for i, sentence := range xs {
		for j, x := range sentence {
			if !x.Finite() {
				return nil, errors.Wrapf(learning.ErrTraining, "sentence %d token %d has a non-finite feature", i, j)
			}
		}
	}

	var (
		log   = h.Log()
		m     = newModel(dims)
		tags  = make([][]Tag, len(xs))
		grad  = make([]float64, len(m.w))
		parts = parallel.Partition(len(xs), h.Threads)
		bufs  = make([]partial, len(parts))
	)
	for i := range xs {
		tags[i] = TagsOf(len(xs[i]), gold[i])
	}
	for p := range bufs {
		bufs[p].grad = make([]float64, len(m.w))
	}

	began := time.Now()
	for epoch := 1; epoch <= h.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for k := range grad {
			grad[k] = 0
		}
		var (
			loss     float64
			mistakes int
		)
		err := parallel.Reduce(len(xs), h.Threads, func(part int, r parallel.Range) (*partial, error) {
			buf := &bufs[part]
			for k := range buf.grad {
				buf.grad[k] = 0
			}
			buf.loss, buf.mistakes = 0, 0
			for i := r.Start; i < r.End; i++ {
				l, wrong := step(m.w, dims, xs[i], tags[i], beta, buf.grad)
				buf.loss += l
				if wrong {
					buf.mistakes++
				}
			}
			return buf, nil
		}, func(p *partial) {
			floats.Add(grad, p.grad)
			loss += p.loss
			mistakes += p.mistakes
		})
		if err != nil {
			return nil, err
		}

		log.Debug("segmenter epoch",
			zap.Int("epoch", epoch),
			zap.Float64("loss", loss),
			zap.Int("mistakes", mistakes))
		if mistakes == 0 {
			break
		}

		rate := h.Rate(epoch)
		floats.Scale(1-rate*h.Lambda, m.w)
		floats.AddScaled(m.w, rate/float64(len(xs)), grad)
		if err := learning.CheckFinite("segmenter weights", m.w); err != nil {
			return nil, err
		}
	}
	log.Info("segmenter trained",
		zap.Int("sentences", len(xs)),
		zap.Int("dims", dims),
		zap.Duration("took", time.Since(began)))
	return m, nil
}

// step decodes one sentence under the loss augmented objective and, when the
// decode differs from gold, adds the descent direction into g. It returns the
// hinge loss of the sentence and whether it was decoded wrongly.
func step(w []float64, dims int, xs []features.Vector, gold []Tag, beta float64, g []float64) (float64, bool) {
	cost := func(i int, t Tag) float64 {
		switch {
		case t == gold[i]:
			return 0
		case gold[i] != O:
			return beta
		default:
			return 1
		}
	}
	pred := viterbi(w, dims, xs, cost)

	wrong := false
	var delta float64
	for i := range pred {
		if pred[i] != gold[i] {
			wrong = true
			delta += cost(i, pred[i])
		}
	}
	if !wrong {
		return 0, false
	}
	loss := delta + score(w, dims, xs, pred) - score(w, dims, xs, gold)
	phi(g, dims, xs, gold, 1)
	phi(g, dims, xs, pred, -1)
	return loss, true
}

// score is the model score of a tag sequence.
func score(w []float64, dims int, xs []features.Vector, tags []Tag) float64 {
	var s float64
	for i, t := range tags {
		s += xs[i].Dot(emission(w, dims, t))
		if i == 0 {
			s += w[start(dims, t)]
		} else {
			s += w[transition(dims, tags[i-1], t)]
		}
	}
	return s
}
