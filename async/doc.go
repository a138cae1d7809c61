// Package async normalizes immediate values and background computations
// to a single awaitable shape, the way bot event handlers consume both
// cached lookups and network fetches without caring which they got.
//
// [Go] runs a function in a goroutine and returns a [Task]; [Resolve]
// wraps an already-known value in the same Task shape. Callers await
// either uniformly:
//
//	task := async.Go(ctx, func(ctx context.Context) (*Member, error) {
//	    return fetchMember(ctx, id)
//	})
//	member, err := task.Await(ctx)
//
// [All] evaluates boolean predicates concurrently with short-circuit
// semantics, and [GetOrFetch] expresses the ubiquitous "cache hit or
// fetch" pattern.
package async
