package async

import (
	"context"
	"errors"
)

// ErrNoFetcher is returned by GetOrFetch when the cache misses and no
// fetch function was provided.
var ErrNoFetcher = errors.New("async: cache miss and no fetcher")

// GetOrFetch looks key up in a local cache and falls back to a fetch when
// the cache misses. It captures the standard bot pattern of preferring
// the gateway-populated cache over an API round trip:
//
//	guild, err := async.GetOrFetch(ctx, state.Guild, client.FetchGuild, guildID)
//
// get may be nil (always fetch); fetch may be nil (cache only), in which
// case a miss returns ErrNoFetcher.
func GetOrFetch[K comparable, V any](
	ctx context.Context,
	get func(K) (V, bool),
	fetch func(context.Context, K) (V, error),
	key K,
) (V, error) {
	if get != nil {
		if v, ok := get(key); ok {
			return v, nil
		}
	}
	if fetch == nil {
		var zero V
		return zero, ErrNoFetcher
	}
	return fetch(ctx, key)
}

// GetOrFetchTask is GetOrFetch returning a [Task]: cache hits resolve
// immediately, misses fetch in the background.
func GetOrFetchTask[K comparable, V any](
	ctx context.Context,
	get func(K) (V, bool),
	fetch func(context.Context, K) (V, error),
	key K,
) *Task[V] {
	if get != nil {
		if v, ok := get(key); ok {
			return Resolve(v)
		}
	}
	if fetch == nil {
		return Reject[V](ErrNoFetcher)
	}
	return Go(ctx, func(ctx context.Context) (V, error) {
		return fetch(ctx, key)
	})
}
