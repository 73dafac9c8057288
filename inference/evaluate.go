package inference

import "github.com/neurlang/ner/datasets"

// Score counts exact span and label matches.
type Score struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

func (s Score) Precision() float64 {
	return ratio(s.TruePositives, s.TruePositives+s.FalsePositives)
}

func (s Score) Recall() float64 {
	return ratio(s.TruePositives, s.TruePositives+s.FalseNegatives)
}

func (s Score) F1() float64 {
	p, r := s.Precision(), s.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Evaluate runs the extractor over annotated instances and scores it against
// their entities.
func (e *Extractor) Evaluate(instances []*datasets.Instance) (s Score) {
	for _, in := range instances {
		gold := make(map[datasets.Entity]bool, in.NumEntities())
		for _, g := range in.Entities() {
			gold[g] = true
		}
		for _, got := range e.Extract(in.Tokens()) {
			if gold[got.Annotation()] {
				s.TruePositives++
				delete(gold, got.Annotation())
			} else {
				s.FalsePositives++
			}
		}
		s.FalseNegatives += len(gold)
	}
	return
}

// Annotation drops the id and score.
func (e Entity) Annotation() datasets.Entity {
	return datasets.Entity{Span: e.Span, Label: e.Label}
}
