package datasets

// Sentence is an aggregated training sentence. Spans and IDs are parallel.
type Sentence struct {
	Tokens []string
	Spans  []Span
	IDs    []int
}

// Corpus owns copies of every added instance together with the label table
// that resolved their label names.
type Corpus struct {
	labels    *Labels
	sentences []Sentence
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{labels: NewLabels()}
}

// Len returns the number of sentences.
func (c *Corpus) Len() int {
	return len(c.sentences)
}

// Labels returns the corpus label table. Callers must not add to it.
func (c *Corpus) Labels() *Labels {
	return c.labels
}

// Sentences returns the stored sentences. The result shares storage with the
// corpus and is read-only.
func (c *Corpus) Sentences() []Sentence {
	return c.sentences[:len(c.sentences):len(c.sentences)]
}

// Add copies in into the corpus and resolves its label names.
func (c *Corpus) Add(in *Instance) {
	ents := in.Entities()
	s := Sentence{
		Tokens: in.Tokens(),
		Spans:  make([]Span, len(ents)),
		IDs:    make([]int, len(ents)),
	}
	for i, e := range ents {
		s.Spans[i] = e.Span
		s.IDs[i] = c.labels.Add(e.Label)
	}
	c.sentences = append(c.sentences, s)
}
