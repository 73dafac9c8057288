// Package inference implements the trained extractor: it bundles the token
// features, the span detector and the segment classifier with the label table.
package inference

import (
	"github.com/google/uuid"
	"github.com/neurlang/ner/classifier"
	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/embedding"
	"github.com/neurlang/ner/features"
	"github.com/neurlang/ner/segmenter"
	"github.com/pkg/errors"
)

// ErrIncompatible is returned when the parts of an extractor do not fit together.
var ErrIncompatible = errors.New("incompatible extractor parts")

// Entity is an extracted entity.
type Entity struct {
	datasets.Span
	Label string  `json:"label"`
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// Extractor is an immutable trained NER model.
type Extractor struct {
	id         uuid.UUID
	features   *features.Builder
	segmenter  *segmenter.Model
	classifier *classifier.Model
	labels     []string
}

// New bundles the trained parts. labels[i] names label id i+1.
func New(fb *features.Builder, seg *segmenter.Model, cls *classifier.Model, labels []string) (*Extractor, error) {
	if seg.Dims() != fb.Dims() || cls.Dims() != fb.Dims() {
		return nil, errors.Wrapf(ErrIncompatible, "features %d, segmenter %d, classifier %d dims",
			fb.Dims(), seg.Dims(), cls.Dims())
	}
	if cls.Classes() != len(labels)+1 {
		return nil, errors.Wrapf(ErrIncompatible, "classifier has %d classes for %d labels",
			cls.Classes(), len(labels))
	}
	return &Extractor{
		id:         uuid.New(),
		features:   fb,
		segmenter:  seg,
		classifier: cls,
		labels:     append([]string(nil), labels...),
	}, nil
}

// ID identifies this training result.
func (e *Extractor) ID() uuid.UUID {
	return e.id
}

func (e *Extractor) Provider() embedding.Provider {
	return e.features.Provider()
}

func (e *Extractor) Segmenter() *segmenter.Model {
	return e.segmenter
}

func (e *Extractor) Classifier() *classifier.Model {
	return e.classifier
}

// Labels returns the label names ordered by id, starting at id 1.
func (e *Extractor) Labels() []string {
	return append([]string(nil), e.labels...)
}

// NumLabels returns the number of entity labels.
func (e *Extractor) NumLabels() int {
	return len(e.labels)
}

// Label returns the name of id, or "" for the not-entity id.
func (e *Extractor) Label(id int) string {
	if id <= datasets.NotEntity || id > len(e.labels) {
		return ""
	}
	return e.labels[id-1]
}

// Extract returns the entities found in tokens, in token order.
func (e *Extractor) Extract(tokens []string) []Entity {
	xs := e.features.Sentence(tokens)
	var out []Entity
	for _, s := range e.segmenter.Segment(xs) {
		id, score := e.classifier.Predict(e.features.Segment(tokens, s))
		if id == datasets.NotEntity {
			continue
		}
		out = append(out, Entity{Span: s, Label: e.Label(id), ID: id, Score: score})
	}
	return out
}
