// Package features turns token sequences into the feature vectors consumed by
// the span detector and the segment classifier.
//
// Both kinds of vector share one layout: a dense block of three embeddings
// followed by a prime-sized space of hashed binary indicators. Indicator 0 is
// the bias.
package features

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/neurlang/ner/datasets"
	"github.com/neurlang/ner/embedding"
	"github.com/neurlang/ner/hash"
	"golang.org/x/text/unicode/norm"
)

// salts keep the same indicator apart in different window positions.
const (
	saltCur     uint32 = 0x2545f491
	saltPrev    uint32 = 0x9e3779b9
	saltNext    uint32 = 0x7f4a7c15
	saltMember  uint32 = 0x85ebca6b
	saltFirst   uint32 = 0xc2b2ae35
	saltLast    uint32 = 0x27d4eb2f
	saltLeft    uint32 = 0x165667b1
	saltRight   uint32 = 0xd3a2646c
	saltSegment uint32 = 0xfd7046c5
)

const bias = 0

// Builder builds feature vectors over an embedding provider. It is safe for
// concurrent use.
type Builder struct {
	provider embedding.Provider
	sparse   uint32
	language string
	cache    *ttlcache.Cache[string, []uint32]
}

// NewBuilder returns a builder over p.
func NewBuilder(p embedding.Provider, cfg Config) *Builder {
	cfg = cfg.withDefaults()
	return &Builder{
		provider: p,
		sparse:   hash.Dim(cfg.SparseDims),
		language: cfg.Language,
		cache: ttlcache.New(
			ttlcache.WithTTL[string, []uint32](ttlcache.NoTTL),
			ttlcache.WithCapacity[string, []uint32](cfg.CacheSize),
		),
	}
}

// Provider returns the embedding provider.
func (b *Builder) Provider() embedding.Provider {
	return b.provider
}

// TokenDims is the embedding size of one token.
func (b *Builder) TokenDims() int {
	return b.provider.Dims()
}

// SparseDims is the size of the hashed indicator space.
func (b *Builder) SparseDims() int {
	return int(b.sparse)
}

// Dims is the length of a weight vector for either kind of feature vector.
func (b *Builder) Dims() int {
	return 3*b.TokenDims() + b.SparseDims()
}

// Sentence returns one vector per token: the embeddings of the token and its
// two neighbours, plus the indicators of all three.
func (b *Builder) Sentence(tokens []string) []Vector {
	d := b.TokenDims()
	base := make([][]uint32, len(tokens))
	for i, t := range tokens {
		base[i] = b.token(t)
	}
	out := make([]Vector, len(tokens))
	for i := range tokens {
		dense := make([]float64, 3*d)
		copy(dense, b.provider.Lookup(tokens[i]))
		sparse := make([]uint32, 0, 1+3*len(base[i]))
		sparse = append(sparse, bias)
		sparse = b.index(sparse, base[i], saltCur)
		if i > 0 {
			copy(dense[d:], b.provider.Lookup(tokens[i-1]))
			sparse = b.index(sparse, base[i-1], saltPrev)
		} else {
			sparse = append(sparse, b.named("BOS", saltPrev))
		}
		if i+1 < len(tokens) {
			copy(dense[2*d:], b.provider.Lookup(tokens[i+1]))
			sparse = b.index(sparse, base[i+1], saltNext)
		} else {
			sparse = append(sparse, b.named("EOS", saltNext))
		}
		out[i] = Vector{Dense: dense, Sparse: sparse}
	}
	return out
}

// Segment returns the vector of the span s of tokens: the mean embedding of
// its members, the embeddings just outside it, and indicators of its members,
// edges, neighbours and length.
func (b *Builder) Segment(tokens []string, s datasets.Span) Vector {
	d := b.TokenDims()
	dense := make([]float64, 3*d)
	sparse := []uint32{bias, b.named("len="+bucket(s.Len()), saltSegment)}

	for i := s.Start; i < s.End; i++ {
		for k, x := range b.provider.Lookup(tokens[i]) {
			dense[k] += x
		}
		sparse = b.index(sparse, b.token(tokens[i]), saltMember)
	}
	if n := float64(s.Len()); n > 0 {
		for k := 0; k < d; k++ {
			dense[k] /= n
		}
	}
	sparse = b.index(sparse, b.token(tokens[s.Start]), saltFirst)
	sparse = b.index(sparse, b.token(tokens[s.End-1]), saltLast)

	if s.Start > 0 {
		copy(dense[d:], b.provider.Lookup(tokens[s.Start-1]))
		sparse = b.index(sparse, b.token(tokens[s.Start-1]), saltLeft)
	} else {
		sparse = append(sparse, b.named("BOS", saltLeft))
	}
	if s.End < len(tokens) {
		copy(dense[2*d:], b.provider.Lookup(tokens[s.End]))
		sparse = b.index(sparse, b.token(tokens[s.End]), saltRight)
	} else {
		sparse = append(sparse, b.named("EOS", saltRight))
	}
	return Vector{Dense: dense, Sparse: sparse}
}

// token returns the cached indicator hashes of a token.
func (b *Builder) token(t string) []uint32 {
	t = norm.NFC.String(t)
	if item := b.cache.Get(t); item != nil {
		return item.Value()
	}
	v := bases(indicators(t, b.language))
	b.cache.Set(t, v, ttlcache.DefaultTTL)
	return v
}

// index appends the slots of base under salt, never colliding with the bias.
func (b *Builder) index(dst, base []uint32, salt uint32) []uint32 {
	n := len(dst)
	dst = append(dst, base...)
	hash.Batch(dst[n:], base, salt, b.sparse-1)
	for i := n; i < len(dst); i++ {
		dst[i]++
	}
	return dst
}

func (b *Builder) named(name string, salt uint32) uint32 {
	return 1 + hash.Index(name, salt, b.sparse-1)
}
