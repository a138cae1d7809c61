package commands

import (
	"context"
	"encoding/json"
)

// ForCommands applies middleware only to commands with the specified names.
func ForCommands(names []string, middleware Middleware) Middleware {
	nameSet := make(map[string]bool)
	for _, name := range names {
		nameSet[name] = true
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			cc := CallContextFromContext(ctx)
			if cc != nil && nameSet[cc.Command] {
				return middleware(next)(ctx, args)
			}
			return next(ctx, args)
		}
	}
}

// ExceptCommands applies middleware to all commands except those with the
// specified names.
func ExceptCommands(names []string, middleware Middleware) Middleware {
	nameSet := make(map[string]bool)
	for _, name := range names {
		nameSet[name] = true
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			cc := CallContextFromContext(ctx)
			if cc == nil || !nameSet[cc.Command] {
				return middleware(next)(ctx, args)
			}
			return next(ctx, args)
		}
	}
}
