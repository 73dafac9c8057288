// Package learning holds what the linear learners share: hyperparameters, the
// training error and numeric sanity checks.
package learning

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrTraining is returned when a learner cannot produce a usable model.
var ErrTraining = errors.New("training failed")

type HyperParameters struct {
	Threads int // number of threads for learning

	Epochs int     // upper bound on passes over the training set
	Lambda float64 // L2 regularization strength
	Step   float64 // initial learning rate, decayed as Step/sqrt(epoch)

	Logger *zap.Logger
}

// Defaults returns hyperparameters suitable for small and medium corpora.
func Defaults() HyperParameters {
	return HyperParameters{
		Threads: 1,
		Epochs:  100,
		Lambda:  1e-4,
		Step:    1,
	}
}

// Validate reports an ErrTraining when a hyperparameter is unusable.
func (h HyperParameters) Validate() error {
	switch {
	case h.Threads < 1:
		return errors.Wrapf(ErrTraining, "threads %d", h.Threads)
	case h.Epochs < 1:
		return errors.Wrapf(ErrTraining, "epochs %d", h.Epochs)
	case !(h.Lambda >= 0) || math.IsInf(h.Lambda, 0):
		return errors.Wrapf(ErrTraining, "lambda %v", h.Lambda)
	case !(h.Step > 0) || math.IsInf(h.Step, 0):
		return errors.Wrapf(ErrTraining, "step %v", h.Step)
	}
	return nil
}

// Log returns the configured logger, or a no-op logger.
func (h HyperParameters) Log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// Rate is the learning rate of the 1-based epoch.
func (h HyperParameters) Rate(epoch int) float64 {
	return h.Step / math.Sqrt(float64(epoch))
}

// CheckFinite returns an ErrTraining naming what when v holds a NaN or Inf.
func CheckFinite(what string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Wrapf(ErrTraining, "%s[%d] is %v", what, i, x)
		}
	}
	return nil
}
