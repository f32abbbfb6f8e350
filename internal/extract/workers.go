package extract

import (
	"context"
	"sync"
)

// chunkOutcome is the result of one chunk/category generation attempt.
type chunkOutcome struct {
	Parsed  map[string]any
	Skipped bool
	Err     error
}

// runOrdered executes fn for indices 0..n-1 with at most limit
// concurrent workers and returns the outcomes in index order. Workers
// already running finish after cancellation; indices not yet started
// come back with ctx.Err.
func runOrdered(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) chunkOutcome) []chunkOutcome {
	if limit <= 0 {
		limit = 1
	}
	outcomes := make([]chunkOutcome, n)

	var wg sync.WaitGroup
	sem := make(chan struct{}, limit)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			outcomes[i] = chunkOutcome{Err: err}
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = fn(ctx, i)
		}(i)
	}

	wg.Wait()
	return outcomes
}
