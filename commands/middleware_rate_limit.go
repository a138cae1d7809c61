package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/concordlabs/concord/ratelimit"
)

// WithRateLimit creates middleware that paces command execution with a
// token bucket of ratePerSecond calls per second.
func WithRateLimit(ratePerSecond float64) Middleware {
	return WithRateLimiter(ratelimit.NewTokenBucket(ratePerSecond))
}

// WithRateLimiter creates middleware using a custom limiter, e.g. a
// ratelimit.HeaderLimiter tracking a server bucket.
func WithRateLimiter(limiter ratelimit.Limiter) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit exceeded: %w", err)
			}
			return next(ctx, args)
		}
	}
}
