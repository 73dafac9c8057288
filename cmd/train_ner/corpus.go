package main

import (
	"io"
	"os"

	"github.com/bytedance/sonic/decoder"
	"github.com/neurlang/ner/datasets"
	"github.com/pkg/errors"
)

// record is one corpus line.
type record struct {
	Tokens   []string          `json:"tokens"`
	Entities []datasets.Entity `json:"entities"`
}

// readCorpus decodes a stream of records into instances.
func readCorpus(r io.Reader) ([]*datasets.Instance, error) {
	dec := decoder.NewStreamDecoder(r)
	var out []*datasets.Instance
	for {
		var rec record
		if err := dec.Decode(&rec); errors.Is(err, io.EOF) {
			return out, nil
		} else if err != nil {
			return nil, errors.Wrapf(err, "record %d", len(out)+1)
		}
		in := datasets.NewInstance(rec.Tokens)
		for _, e := range rec.Entities {
			if err := in.AddEntity(e.Span, e.Label); err != nil {
				return nil, errors.WithMessagef(err, "record %d", len(out)+1)
			}
		}
		out = append(out, in)
	}
}

func readCorpusFile(path string) ([]*datasets.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCorpus(f)
}
