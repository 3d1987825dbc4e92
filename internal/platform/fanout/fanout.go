// Package fanout runs a function over a slice with a cap on how many calls are
// in flight at once. Results keep the order of the input.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input item.
type Result[R any] struct {
	Value R
	Err   error
}

// Map calls fn once per item, running at most limit calls concurrently. A
// non-positive limit runs every item at once.
//
// Items still waiting for a slot when ctx is done are not passed to fn; their
// Result carries ctx.Err(). Calls already running are left to observe ctx
// themselves. Map returns after every call has finished.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	// Per-item errors go into results; the group itself never fails.
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
