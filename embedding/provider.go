// Package embedding provides the per-token vector lookup consumed by training
// and inference. A Provider is built once and is read-only afterwards.
package embedding

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// ErrFileLoad is returned when a vector file is missing, unreadable or malformed.
var ErrFileLoad = errors.New("embedding file load failed")

// Provider maps a token to a fixed-size feature vector.
// Implementations must be safe for concurrent use. Callers must not modify
// the returned slice.
type Provider interface {
	// Dims returns the length of every vector returned by Lookup.
	Dims() int

	// Lookup returns the vector of token, or a zero vector when the token is unknown.
	Lookup(token string) []float64
}

// Table is a Provider backed by a flat in-memory vector table.
type Table struct {
	dims  int
	index map[string]int
	data  []float64
	zero  []float64
}

var _ Provider = (*Table)(nil)

func newTable(dims, capacity int) *Table {
	return &Table{
		dims:  dims,
		index: make(map[string]int, capacity),
		data:  make([]float64, 0, capacity*dims),
		zero:  make([]float64, dims),
	}
}

// add appends a vector for token. The first vector seen for a token wins.
func (t *Table) add(token string, vec []float64) {
	if _, ok := t.index[token]; ok {
		return
	}
	t.index[token] = len(t.index)
	t.data = append(t.data, vec...)
}

// FromMap builds a Table from a token to vector map. Every vector must have
// exactly dims entries.
func FromMap(dims int, vectors map[string][]float64) (*Table, error) {
	if dims < 0 {
		return nil, errors.Errorf("negative dimension %d", dims)
	}
	tokens := make([]string, 0, len(vectors))
	for tok := range vectors {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	t := newTable(dims, len(tokens))
	for _, tok := range tokens {
		vec := vectors[tok]
		if len(vec) != dims {
			return nil, errors.Errorf("vector of %q has %d dimensions, want %d", tok, len(vec), dims)
		}
		t.add(tok, vec)
	}
	return t, nil
}

// Dims returns the vector length.
func (t *Table) Dims() int {
	return t.dims
}

// Len returns the number of tokens with a vector.
func (t *Table) Len() int {
	return len(t.index)
}

// Has reports whether token resolves to a stored vector.
func (t *Table) Has(token string) bool {
	_, ok := t.find(token)
	return ok
}

// Lookup returns the vector of token. Unknown tokens are retried in NFC form
// and then lowercased before falling back to the zero vector.
func (t *Table) Lookup(token string) []float64 {
	if i, ok := t.find(token); ok {
		return t.data[i*t.dims : (i+1)*t.dims : (i+1)*t.dims]
	}
	return t.zero
}

func (t *Table) find(token string) (int, bool) {
	if i, ok := t.index[token]; ok {
		return i, true
	}
	nfc := norm.NFC.String(token)
	if i, ok := t.index[nfc]; ok {
		return i, true
	}
	i, ok := t.index[strings.ToLower(nfc)]
	return i, ok
}
