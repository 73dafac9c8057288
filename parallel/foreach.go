// Package parallel contains the bounded parallel loops used by the learners:
// ForEach for independent per-item work and Reduce for partitioned
// map-then-fold computations such as gradient accumulation.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length. ForEach returns once
// every body call has returned.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// Range is a contiguous half-open block [Start, End) of loop indices.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, length) into at most parts contiguous, non-empty ranges
// whose lengths differ by at most one. Earlier ranges take the remainder.
func Partition(length, parts int) []Range {
	if length <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > length {
		parts = length
	}
	var (
		out   = make([]Range, parts)
		size  = length / parts
		extra = length % parts
		start int
	)
	for p := range out {
		n := size
		if p < extra {
			n++
		}
		out[p] = Range{Start: start, End: start + n}
		start += n
	}
	return out
}
