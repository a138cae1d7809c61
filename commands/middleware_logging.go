package commands

import (
	"context"
	"encoding/json"
	"time"
)

// Logger is the interface for logging middleware.
type Logger interface {
	Printf(format string, v ...any)
}

// WithLogging creates middleware that logs command calls.
func WithLogging(logger Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			name, callID := callInfo(ctx)

			logger.Printf("command start: %s call_id=%s", name, callID)
			start := time.Now()

			result, err := next(ctx, args)

			duration := time.Since(start)
			if err != nil {
				logger.Printf("command error: %s call_id=%s duration=%v error=%v", name, callID, duration, err)
			} else {
				logger.Printf("command done: %s call_id=%s duration=%v", name, callID, duration)
			}

			return result, err
		}
	}
}

// WithDetailedLogging creates middleware that logs command calls with
// their arguments and results.
// WARNING: May log user-provided data. Use only in development.
func WithDetailedLogging(logger Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			name, callID := callInfo(ctx)

			logger.Printf("command call: %s call_id=%s args=%s", name, callID, string(args))
			start := time.Now()

			result, err := next(ctx, args)

			duration := time.Since(start)
			if err != nil {
				logger.Printf("command error: %s call_id=%s duration=%v error=%v", name, callID, duration, err)
			} else {
				resultJSON, _ := json.Marshal(result)
				logger.Printf("command result: %s call_id=%s duration=%v result=%s", name, callID, duration, string(resultJSON))
			}

			return result, err
		}
	}
}

// callInfo extracts the command name and call ID for log lines.
func callInfo(ctx context.Context) (name, callID string) {
	name = "unknown"
	if cc := CallContextFromContext(ctx); cc != nil {
		if cc.Command != "" {
			name = cc.Command
		}
		callID = cc.CallID
	}
	return name, callID
}
