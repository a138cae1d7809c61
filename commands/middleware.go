package commands

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// HandlerFunc is the function signature for command execution.
// Middleware wraps this function to add behavior.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Middleware wraps a HandlerFunc to add behavior before and/or after
// execution. Middleware functions receive the next handler in the chain
// and return a new handler.
type Middleware func(next HandlerFunc) HandlerFunc

// CallContext provides metadata about the current command call to
// middleware. It is stored in the context and accessible via
// CallContextFromContext.
type CallContext struct {
	// Command is the name of the command being called.
	Command string

	// CallID uniquely identifies this invocation. ApplyMiddleware
	// assigns one when the caller did not.
	CallID string

	// Options is the schema of the command being called, for middleware
	// that validates or inspects arguments.
	Options []Option

	// Metadata allows middleware to share data with each other.
	Metadata map[string]any
}

// callContextKey is the context key for CallContext.
type callContextKey struct{}

// ContextWithCallContext adds CallContext to a context.
func ContextWithCallContext(ctx context.Context, cc *CallContext) context.Context {
	return context.WithValue(ctx, callContextKey{}, cc)
}

// CallContextFromContext retrieves CallContext from a context.
// Returns nil if not present.
func CallContextFromContext(ctx context.Context) *CallContext {
	cc, _ := ctx.Value(callContextKey{}).(*CallContext)
	return cc
}

// Chain combines multiple middleware into a single middleware.
// Middleware are executed in the order provided (first middleware is
// outermost).
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		// Apply in reverse order so first middleware is outermost.
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// ApplyMiddleware wraps a command with middleware.
// Returns a new command that executes middleware around the original.
func ApplyMiddleware(cmd Command, middlewares ...Middleware) Command {
	if len(middlewares) == 0 {
		return cmd
	}

	chain := Chain(middlewares...)
	wrapped := chain(cmd.Call)

	return &wrappedCommand{
		cmd:     cmd,
		wrapped: wrapped,
	}
}

// wrappedCommand is a command with middleware applied.
type wrappedCommand struct {
	cmd     Command
	wrapped HandlerFunc
}

func (w *wrappedCommand) Name() string        { return w.cmd.Name() }
func (w *wrappedCommand) Description() string { return w.cmd.Description() }
func (w *wrappedCommand) Options() []Option   { return w.cmd.Options() }

func (w *wrappedCommand) Call(ctx context.Context, args json.RawMessage) (any, error) {
	// Ensure CallContext exists with a usable call ID.
	cc := CallContextFromContext(ctx)
	if cc == nil {
		cc = &CallContext{
			Command:  w.cmd.Name(),
			CallID:   uuid.NewString(),
			Options:  w.cmd.Options(),
			Metadata: make(map[string]any),
		}
		ctx = ContextWithCallContext(ctx, cc)
	} else {
		if cc.Command == "" {
			cc.Command = w.cmd.Name()
		}
		if cc.CallID == "" {
			cc.CallID = uuid.NewString()
		}
		if cc.Options == nil {
			cc.Options = w.cmd.Options()
		}
	}

	return w.wrapped(ctx, args)
}
