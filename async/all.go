package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Predicate is a boolean check that may do work, such as a permission
// lookup that needs a fetch.
type Predicate func(ctx context.Context) (bool, error)

// True wraps an already-known boolean as a Predicate, mirroring how
// [Resolve] wraps values. Mixed slices of cheap and expensive checks
// then share one signature.
func True(v bool) Predicate {
	return func(context.Context) (bool, error) {
		return v, nil
	}
}

// All reports whether every predicate is true. Predicates run
// concurrently; the first false or error cancels the rest and resolves
// the result immediately.
func All(ctx context.Context, preds ...Predicate) (bool, error) {
	if len(preds) == 0 {
		return true, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	falsy := make(chan struct{}, len(preds))

	for _, pred := range preds {
		g.Go(func() error {
			ok, err := pred(ctx)
			if err != nil {
				return err
			}
			if !ok {
				falsy <- struct{}{}
				// A definitive false makes the remaining checks moot.
				return context.Canceled
			}
			return nil
		})
	}

	err := g.Wait()
	select {
	case <-falsy:
		return false, nil
	default:
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
