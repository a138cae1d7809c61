// Package commands builds slash-command argument schemas from Go
// function signatures and dispatches invocations to them.
//
// # Commands from functions
//
// [NewFunc] resolves a handler's parameter types into the platform's
// application-command option format:
//
//	cmd, err := commands.NewFunc("greet", "Greets a user.",
//	    func(ctx context.Context, user core.Snowflake, greeting *string) (string, error) {
//	        ...
//	    },
//	    commands.WithParamNames("user", "greeting"),
//	)
//
// string, integer, boolean, and float parameters map to the matching
// option types; pointer parameters become optional options and arrive
// nil when omitted. [Resolver.RegisterKind] binds platform reference
// types, and [Resolver.RegisterChoices] turns a named type into a
// fixed-choice option. Signatures the resolver cannot express, such as
// interface parameters or doubly-optional pointers, are rejected at
// construction.
//
// # Dispatch
//
// A [Registry] holds commands by name and routes an [Invocation] to its
// handler. [ApplyMiddleware] layers cross-cutting behavior around a
// command:
//
//	cmd = commands.ApplyMiddleware(cmd,
//	    commands.WithValidation(),
//	    commands.WithTimeout(3*time.Second),
//	    commands.WithLogging(logger),
//	)
//
// # Autocomplete
//
// [BasicAutocomplete] turns a static list or a lookup function into a
// prefix-filtering suggestion callback.
package commands
