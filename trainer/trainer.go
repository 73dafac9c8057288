package trainer

import (
	"context"
	"math"
	"time"

	"github.com/neurlang/ner/classifier"
	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/embedding"
	"github.com/neurlang/ner/features"
	"github.com/neurlang/ner/inference"
	"github.com/neurlang/ner/learning"
	"github.com/neurlang/ner/parallel"
	"github.com/neurlang/ner/segmenter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrInvalidParameter is returned for an out of range setting.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyCorpus is returned when training without any instances.
	ErrEmptyCorpus = errors.New("empty corpus")
)

const (
	DefaultNumThreads = 16
	DefaultBeta       = 0.5
)

// Trainer aggregates annotated sentences and trains extractors from them.
//
// Mutating methods must not run concurrently with each other or with Train.
// Train itself only reads the Trainer and may be called repeatedly.
type Trainer struct {
	provider embedding.Provider
	corpus   *datasets.Corpus
	threads  int
	beta     float64

	segmenter  learning.HyperParameters
	classifier learning.HyperParameters
	features   features.Config

	log *zap.Logger
}

// New returns an empty Trainer over an embedding provider.
func New(p embedding.Provider, opts ...Option) (*Trainer, error) {
	if p == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "nil embedding provider")
	}
	t := &Trainer{
		provider:   p,
		corpus:     datasets.NewCorpus(),
		threads:    DefaultNumThreads,
		beta:       DefaultBeta,
		segmenter:  learning.Defaults(),
		classifier: learning.Defaults(),
		features:   features.DefaultConfig(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewFromFile loads the embeddings at path and returns an empty Trainer over
// them.
func NewFromFile(path string, opts ...Option) (*Trainer, error) {
	p, err := embedding.Load(path)
	if err != nil {
		return nil, err
	}
	return New(p, opts...)
}

// Size returns the number of instances added.
func (t *Trainer) Size() int {
	return t.corpus.Len()
}

// Add copies an instance into the training set.
func (t *Trainer) Add(in *datasets.Instance) {
	t.corpus.Add(in)
	instancesAdded.Inc()
}

// AddTokens adds a sentence with the entities ranges[i] labeled labels[i].
// Nothing is added when any range is invalid.
func (t *Trainer) AddTokens(tokens []string, ranges []datasets.Span, labels []string) error {
	in, err := instance(tokens, ranges, labels)
	if err != nil {
		return err
	}
	t.Add(in)
	return nil
}

// AddBatch adds several sentences as AddTokens does. Nothing is added when any
// sentence is invalid.
func (t *Trainer) AddBatch(tokens [][]string, ranges [][]datasets.Span, labels [][]string) error {
	if len(tokens) != len(ranges) || len(tokens) != len(labels) {
		return errors.Wrapf(datasets.ErrInvalidRange, "batch of %d sentences, %d range lists, %d label lists",
			len(tokens), len(ranges), len(labels))
	}
	batch := make([]*datasets.Instance, len(tokens))
	for i := range tokens {
		in, err := instance(tokens[i], ranges[i], labels[i])
		if err != nil {
			return errors.WithMessagef(err, "sentence %d", i)
		}
		batch[i] = in
	}
	for _, in := range batch {
		t.Add(in)
	}
	return nil
}

func instance(tokens []string, ranges []datasets.Span, labels []string) (*datasets.Instance, error) {
	if len(ranges) != len(labels) {
		return nil, errors.Wrapf(datasets.ErrInvalidRange, "%d ranges but %d labels", len(ranges), len(labels))
	}
	in := datasets.NewInstance(tokens)
	for i, r := range ranges {
		if err := in.AddEntity(r, labels[i]); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// NumThreads returns the training parallelism.
func (t *Trainer) NumThreads() int {
	return t.threads
}

// SetNumThreads sets the training parallelism, which must be at least 1.
func (t *Trainer) SetNumThreads(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidParameter, "threads %d", n)
	}
	t.threads = n
	return nil
}

// Beta returns the precision/recall trade-off.
func (t *Trainer) Beta() float64 {
	return t.beta
}

// SetBeta sets the precision/recall trade-off. Values below 1 favour
// precision, values above 1 favour recall.
func (t *Trainer) SetBeta(b float64) error {
	if !(b >= 0) || math.IsInf(b, 1) {
		return errors.Wrapf(ErrInvalidParameter, "beta %v", b)
	}
	t.beta = b
	return nil
}

// Labels returns the label names ordered by id, starting at id 1.
func (t *Trainer) Labels() []string {
	return t.corpus.Labels().Names()
}

// Train trains an extractor on everything added so far.
func (t *Trainer) Train() (*inference.Extractor, error) {
	return t.TrainContext(context.Background())
}

// TrainContext is Train with cancellation checked between epochs.
func (t *Trainer) TrainContext(ctx context.Context) (*inference.Extractor, error) {
	e, err := t.train(ctx)
	switch {
	case err == nil:
		trainRuns.WithLabelValues("success").Inc()
	case errors.Is(err, ErrEmptyCorpus):
		trainRuns.WithLabelValues("empty").Inc()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		trainRuns.WithLabelValues("canceled").Inc()
	default:
		trainRuns.WithLabelValues("failed").Inc()
	}
	return e, err
}

func (t *Trainer) train(ctx context.Context) (*inference.Extractor, error) {
	if t.Size() == 0 {
		return nil, ErrEmptyCorpus
	}
	labels := t.Labels()
	if len(labels) == 0 {
		return nil, errors.Wrap(learning.ErrTraining, "no instance has an entity")
	}
	if cores := parallel.Cores(); t.threads > cores {
		t.log.Warn("more training threads than logical cores",
			zap.Int("threads", t.threads),
			zap.Int("cores", cores),
			zap.String("cpu", parallel.CPU()))
	}

	began := time.Now()
	sentences := t.corpus.Sentences()
	t.log.Info("training started",
		zap.Int("sentences", len(sentences)),
		zap.Int("labels", len(labels)),
		zap.Int("threads", t.threads),
		zap.Float64("beta", t.beta))

	fb := features.NewBuilder(t.provider, t.features)
	xs := make([][]features.Vector, len(sentences))
	gold := make([][]datasets.Span, len(sentences))
	parallel.ForEach(len(sentences), t.threads, func(i int) {
		xs[i] = fb.Sentence(sentences[i].Tokens)
		gold[i] = sentences[i].Spans
	})

	seg, err := segmenter.Train(ctx, xs, gold, fb.Dims(), t.beta, t.params(t.segmenter, "segmenter"))
	if err != nil {
		return nil, err
	}
	samples := sample(fb, seg, sentences, xs, t.threads)
	cls, err := classifier.Train(ctx, samples, len(labels)+1, fb.Dims(), t.params(t.classifier, "classifier"))
	if err != nil {
		return nil, err
	}
	e, err := inference.New(fb, seg, cls, labels)
	if err != nil {
		return nil, err
	}

	took := time.Since(began)
	trainDuration.Observe(took.Seconds())
	t.log.Info("training finished",
		zap.Stringer("extractor", e.ID()),
		zap.Int("samples", len(samples)),
		zap.Duration("took", took))
	return e, nil
}

func (t *Trainer) params(h learning.HyperParameters, name string) learning.HyperParameters {
	h.Threads = t.threads
	h.Logger = t.log.Named(name)
	return h
}
