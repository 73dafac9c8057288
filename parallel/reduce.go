package parallel

import "golang.org/x/sync/errgroup"

// Reduce partitions [0, length) with Partition(length, limit) and runs mapper
// once per partition, each on its own goroutine. Partials are folded on the
// calling goroutine in partition order, so for a fixed limit the fold sequence
// never depends on scheduling. If any mapper fails, no partial is folded and
// the first error is returned.
func Reduce[T any](length, limit int, mapper func(part int, r Range) (T, error), fold func(partial T)) error {
	ranges := Partition(length, limit)
	if len(ranges) == 0 {
		return nil
	}
	partials := make([]T, len(ranges))

	var g errgroup.Group
	g.SetLimit(len(ranges))
	for p, r := range ranges {
		g.Go(func() error {
			partial, err := mapper(p, r)
			if err != nil {
				return err
			}
			partials[p] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, partial := range partials {
		fold(partial)
	}
	return nil
}
