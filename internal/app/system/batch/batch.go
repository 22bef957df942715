// Package batch runs a fixed set of backend reads in parallel and fails
// the whole set when any one fails.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All runs fns concurrently and returns the first error. Callers commit
// the results only when All returns nil, so a failure never leaves a mix
// of new and old values on the page.
func All(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}
