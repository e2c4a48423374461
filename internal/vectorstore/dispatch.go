package vectorstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runBlocking dispatches a synchronous call onto an errgroup goroutine so
// the caller's context cancellation is observed promptly instead of
// waiting out a blocking Weaviate round trip. The underlying call still
// runs to completion on its own goroutine even if the caller gives up
// first; this mirrors the Python original's asyncio.to_thread wrapping
// and satisfies §5's requirement that synchronous dependencies be
// dispatched off the request scheduler.
func runBlocking[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var group errgroup.Group
	var out T
	group.Go(func() error {
		v, err := fn()
		out = v
		return err
	})

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case err := <-done:
		if err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
}
