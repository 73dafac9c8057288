package trainer

import (
	"github.com/neurlang/ner/features"
	"github.com/neurlang/ner/learning"
	"go.uber.org/zap"
)

// Option configures a Trainer.
type Option func(*Trainer) error

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Trainer) error {
		if l == nil {
			l = zap.NewNop()
		}
		t.log = l
		return nil
	}
}

// WithNumThreads sets the training parallelism.
func WithNumThreads(n int) Option {
	return func(t *Trainer) error {
		return t.SetNumThreads(n)
	}
}

// WithBeta sets the precision/recall trade-off of the span detector.
func WithBeta(b float64) Option {
	return func(t *Trainer) error {
		return t.SetBeta(b)
	}
}

// WithSegmenterParams sets the span detector hyperparameters. Threads and
// Logger are always taken from the Trainer.
func WithSegmenterParams(h learning.HyperParameters) Option {
	return func(t *Trainer) error {
		t.segmenter = h
		return nil
	}
}

// WithClassifierParams sets the segment classifier hyperparameters. Threads and
// Logger are always taken from the Trainer.
func WithClassifierParams(h learning.HyperParameters) Option {
	return func(t *Trainer) error {
		t.classifier = h
		return nil
	}
}

// WithFeatureConfig sets the feature space configuration.
func WithFeatureConfig(cfg features.Config) Option {
	return func(t *Trainer) error {
		t.features = cfg
		return nil
	}
}
