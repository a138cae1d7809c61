package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// WithTimeout creates middleware that enforces a timeout on command
// execution. Interactions must be acknowledged quickly, so handlers that
// overrun are abandoned and reported as errors.
func WithTimeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			// Execute in a goroutine so a stuck handler cannot hold the
			// dispatch loop.
			type result struct {
				value any
				err   error
			}
			ch := make(chan result, 1)

			go func() {
				v, err := next(ctx, args)
				ch <- result{v, err}
			}()

			select {
			case r := <-ch:
				return r.value, r.err
			case <-ctx.Done():
				return nil, fmt.Errorf("command execution timeout after %v", d)
			}
		}
	}
}
