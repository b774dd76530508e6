package coordinator

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"
)

type ordered[T any] struct {
	order int
	value T
}

// ConcurrentMap runs f over inputs with bounded concurrency and returns
// outputs in input order, mirroring
// database.ConcurrentMapFuncWithError's errgroup/ordering idiom. Used by
// the CLI to fan out DropIndexTables/reindex work across several
// Coordinators without losing deterministic output ordering.
func ConcurrentMap[Tin any, Tout any](inputs []Tin, concurrency int, f func(Tin) (Tout, error)) ([]Tout, error) {
	eg := errgroup.Group{}
	switch {
	case concurrency == 0:
		eg.SetLimit(1)
	case concurrency > 0:
		eg.SetLimit(concurrency)
	}

	results := make(chan ordered[Tout], len(inputs))
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			out, err := f(in)
			if err != nil {
				return err
			}
			results <- ordered[Tout]{order: i, value: out}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	close(results)

	tmp := make([]ordered[Tout], 0, len(inputs))
	for r := range results {
		tmp = append(tmp, r)
	}
	slices.SortFunc(tmp, func(a, b ordered[Tout]) int {
		return cmp.Compare(a.order, b.order)
	})

	out := make([]Tout, len(tmp))
	for i, t := range tmp {
		out[i] = t.value
	}
	return out, nil
}
