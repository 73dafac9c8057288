// Package datasets holds annotated training sentences, the label table and the
// corpus that a trainer aggregates them into.
package datasets

import "github.com/pkg/errors"

// ErrInvalidRange is returned when an entity span is out of bounds, empty or
// overlaps another entity of the same sentence.
var ErrInvalidRange = errors.New("invalid entity range")

// Span is a half-open range [Start, End) of token indices.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two spans share at least one token.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Entity is a labeled span.
type Entity struct {
	Span
	Label string `json:"label"`
}

// Instance is one annotated sentence: an immutable token list plus a growing
// set of non-overlapping labeled spans.
type Instance struct {
	tokens   []string
	entities []Entity
}

// NewInstance returns an instance over a copy of tokens, with no entities.
func NewInstance(tokens []string) *Instance {
	return &Instance{tokens: append([]string(nil), tokens...)}
}

// NumTokens returns the number of tokens.
func (in *Instance) NumTokens() int {
	return len(in.tokens)
}

// NumEntities returns the number of entities added so far.
func (in *Instance) NumEntities() int {
	return len(in.entities)
}

// Tokens returns a copy of the tokens.
func (in *Instance) Tokens() []string {
	return append([]string(nil), in.tokens...)
}

// Entities returns a copy of the entities in insertion order.
func (in *Instance) Entities() []Entity {
	return append([]Entity(nil), in.entities...)
}

// OverlapsAnyEntity reports whether [start, start+length) intersects any entity
// already added. The range itself must be non-empty and within bounds.
func (in *Instance) OverlapsAnyEntity(start, length int) (bool, error) {
	s := Span{Start: start, End: start + length}
	if err := in.checkBounds(s); err != nil {
		return false, err
	}
	return in.overlaps(s), nil
}

// AddEntity adds a labeled half-open range. On error the instance is unchanged.
func (in *Instance) AddEntity(s Span, label string) error {
	if err := in.checkBounds(s); err != nil {
		return err
	}
	if in.overlaps(s) {
		return errors.Wrapf(ErrInvalidRange, "[%d,%d) overlaps an existing entity", s.Start, s.End)
	}
	in.entities = append(in.entities, Entity{Span: s, Label: label})
	return nil
}

// AddEntityAt adds an entity of length tokens beginning at start.
func (in *Instance) AddEntityAt(start, length int, label string) error {
	return in.AddEntity(Span{Start: start, End: start + length}, label)
}

func (in *Instance) checkBounds(s Span) error {
	if s.Start < 0 || s.End <= s.Start || s.End > len(in.tokens) {
		return errors.Wrapf(ErrInvalidRange, "[%d,%d) with %d tokens", s.Start, s.End, len(in.tokens))
	}
	return nil
}

func (in *Instance) overlaps(s Span) bool {
	for _, e := range in.entities {
		if e.Overlaps(s) {
			return true
		}
	}
	return false
}
