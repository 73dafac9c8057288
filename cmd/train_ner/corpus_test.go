package main

import (
	"strings"
	"testing"

	"github.com/neurlang/ner/datasets"
	"github.com/stretchr/testify/require"
)

func TestReadCorpus(t *testing.T) {
	in := `{"tokens":["John","lives","in","Boston"],"entities":[{"start":3,"end":4,"label":"LOCATION"}]}
{"tokens":["hello"]}
`
	got, err := readCorpus(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []datasets.Entity{{Span: datasets.Span{Start: 3, End: 4}, Label: "LOCATION"}}, got[0].Entities())
	require.Equal(t, []string{"hello"}, got[1].Tokens())
	require.Zero(t, got[1].NumEntities())
}

func TestReadCorpusRejectsBadSpans(t *testing.T) {
	in := `{"tokens":["a","b"],"entities":[{"start":0,"end":2,"label":"X"},{"start":1,"end":2,"label":"Y"}]}`
	_, err := readCorpus(strings.NewReader(in))
	require.ErrorIs(t, err, datasets.ErrInvalidRange)
}

func TestReadCorpusRejectsBadJSON(t *testing.T) {
	_, err := readCorpus(strings.NewReader("nope\n"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	require.NoError(t, err)
	_, err = newLogger("loud")
	require.Error(t, err)
}
