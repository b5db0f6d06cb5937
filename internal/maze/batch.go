package maze

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Seeds derives n generation seeds from base. The same base always yields
// the same list.
func Seeds(base int64, n int) []int64 {
	rng := rand.New(rand.NewSource(base))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

// GenerateMany builds one grid per seed with at most parallel generations
// running at once. p.Seed is ignored. Results are in seed order. The first
// failure cancels grids that have not started yet and is returned.
func (gen *Generator) GenerateMany(ctx context.Context, p Params, seeds []int64, parallel int) ([]*Grid, error) {
	if parallel < 1 {
		parallel = 1
	}

	grids := make([]*Grid, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, seed := range seeds {
		g.Go(func() error {
			// A single generation is not interruptible; stop between grids.
			if err := ctx.Err(); err != nil {
				return err
			}
			q := p
			q.Seed = seed
			grid, err := gen.Generate(q)
			if err != nil {
				return err
			}
			grids[i] = grid
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grids, nil
}
