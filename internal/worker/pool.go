// Package worker provides bounded-concurrency fan-out over independent work
// items. One item's failure never aborts its siblings: results and errors
// are collected into separate maps keyed by item identity.
package worker

import (
	"context"
	"log"
	"sync"
)

// DefaultMaxWorkers bounds the pool when the caller passes no limit.
const DefaultMaxWorkers = 10

// Map calls fn once per input across at most maxWorkers goroutines and
// returns the per-key outputs alongside the per-key errors. Remaining items
// are skipped once ctx is cancelled; items already started run to
// completion.
func Map[K comparable, I any, V any](
	ctx context.Context,
	inputs map[K]I,
	maxWorkers int,
	fn func(ctx context.Context, key K, input I) (V, error),
) (map[K]V, map[K]error) {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	type item struct {
		key   K
		input I
	}
	type outcome struct {
		key K
		val V
		err error
	}

	work := make(chan item)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range work {
				val, err := fn(ctx, it.key, it.input)
				results <- outcome{key: it.key, val: val, err: err}
			}
		}()
	}

	go func() {
		defer close(work)
		for key, input := range inputs {
			select {
			case <-ctx.Done():
				return
			case work <- item{key: key, input: input}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	output := make(map[K]V, len(inputs))
	errs := make(map[K]error)
	done := 0
	for res := range results {
		done++
		if res.err != nil {
			log.Printf("[Worker] %v failed (%d/%d): %v", res.key, done, len(inputs), res.err)
			errs[res.key] = res.err
			continue
		}
		output[res.key] = res.val
	}
	return output, errs
}
