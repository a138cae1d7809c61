package commands

import (
	"context"
	"encoding/json"
	"time"
)

// MetricsCollector receives command execution metrics.
type MetricsCollector interface {
	// RecordCall records a command call with its outcome.
	RecordCall(command string, duration time.Duration, err error)
}

// WithMetrics creates middleware that records command execution metrics.
func WithMetrics(collector MetricsCollector) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			name, _ := callInfo(ctx)

			start := time.Now()
			result, err := next(ctx, args)
			duration := time.Since(start)

			collector.RecordCall(name, duration, err)
			return result, err
		}
	}
}
