package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Signature and call errors.
var (
	// ErrNotFunc is returned when NewFunc receives a non-function.
	ErrNotFunc = errors.New("handler must be a function")

	// ErrNoContext is returned when the handler's first parameter is not
	// a context.Context.
	ErrNoContext = errors.New("handler must take context.Context first")

	// ErrBadReturn is returned for handler return shapes other than
	// (), (error), (T) and (T, error).
	ErrBadReturn = errors.New("handler must return (T, error), (error), (T) or nothing")

	// ErrMissingArgument is returned by Call when a required option is
	// absent from the arguments object.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrUnknownArgument is returned by Call when the arguments object
	// carries a name the command does not declare.
	ErrUnknownArgument = errors.New("unknown argument")
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// FuncCommand is a Command built from an ordinary Go function by
// resolving its signature into an option schema.
type FuncCommand struct {
	name        string
	description string
	fn          reflect.Value
	params      []param
	options     []Option
	hasValueOut bool
	hasErrOut   bool
}

// param is one resolved handler parameter.
type param struct {
	name string
	typ  reflect.Type
	res  Resolved
}

// FuncOption customizes NewFunc.
type FuncOption func(*funcConfig)

type funcConfig struct {
	names    []string
	docs     map[string]string
	resolver *Resolver
}

// WithParamNames sets the option names for the handler's parameters, in
// declaration order (the context parameter excluded). Without it, names
// default to arg1, arg2, ...
func WithParamNames(names ...string) FuncOption {
	return func(c *funcConfig) {
		c.names = names
	}
}

// WithParamDoc sets the description of a single option.
func WithParamDoc(name, description string) FuncOption {
	return func(c *funcConfig) {
		c.docs[name] = description
	}
}

// WithResolver substitutes the type resolver, usually to supply extra
// registered kinds or choice sets without touching DefaultResolver.
func WithResolver(r *Resolver) FuncOption {
	return func(c *funcConfig) {
		c.resolver = r
	}
}

// NewFunc builds a Command from a Go function. The function's first
// parameter must be a context.Context; each remaining parameter becomes
// an option, with its type resolved through the resolver. Pointer
// parameters yield optional options and arrive nil when the caller
// omitted them.
//
//	cmd, err := commands.NewFunc("echo", "Repeats your input.",
//	    func(ctx context.Context, message string, times *int) (string, error) {
//	        ...
//	    },
//	    commands.WithParamNames("message", "times"),
//	)
//
// NewFunc returns an error, not a command, for signatures it cannot
// resolve; command registration is startup code and should fail loudly.
func NewFunc(name, description string, fn any, opts ...FuncOption) (*FuncCommand, error) {
	cfg := funcConfig{
		docs:     make(map[string]string),
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("commands: %s: %w, got %T", name, ErrNotFunc, fn)
	}
	t := v.Type()

	if t.NumIn() == 0 || t.In(0) != contextType {
		return nil, fmt.Errorf("commands: %s: %w", name, ErrNoContext)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("commands: %s: %w: variadic parameters", name, ErrUnsupportedType)
	}

	nparams := t.NumIn() - 1
	if cfg.names != nil && len(cfg.names) != nparams {
		return nil, fmt.Errorf("commands: %s: %d param names for %d parameters",
			name, len(cfg.names), nparams)
	}

	cmd := &FuncCommand{
		name:        name,
		description: description,
		fn:          v,
		params:      make([]param, 0, nparams),
		options:     make([]Option, 0, nparams),
	}

	sawOptional := false
	for i := 0; i < nparams; i++ {
		pt := t.In(i + 1)
		res, err := cfg.resolver.Resolve(pt)
		if err != nil {
			return nil, err
		}

		pname := fmt.Sprintf("arg%d", i+1)
		if cfg.names != nil {
			pname = cfg.names[i]
		}

		// The platform rejects required options after optional ones.
		if res.Optional {
			sawOptional = true
		} else if sawOptional {
			return nil, fmt.Errorf("commands: %s: required option %q follows an optional one",
				name, pname)
		}

		cmd.params = append(cmd.params, param{name: pname, typ: pt, res: res})
		cmd.options = append(cmd.options, Option{
			Type:        res.Type,
			Name:        pname,
			Description: cfg.docs[pname],
			Required:    !res.Optional,
			Choices:     res.Choices,
		})
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			cmd.hasErrOut = true
		} else {
			cmd.hasValueOut = true
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("commands: %s: %w", name, ErrBadReturn)
		}
		cmd.hasValueOut = true
		cmd.hasErrOut = true
	default:
		return nil, fmt.Errorf("commands: %s: %w", name, ErrBadReturn)
	}

	return cmd, nil
}

// MustFunc is NewFunc but panics on error, for static command tables.
func MustFunc(name, description string, fn any, opts ...FuncOption) *FuncCommand {
	cmd, err := NewFunc(name, description, fn, opts...)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Name returns the command name.
func (c *FuncCommand) Name() string { return c.name }

// Description returns the command description.
func (c *FuncCommand) Description() string { return c.description }

// Options returns the resolved option schema. The returned slice is a
// copy and safe to modify.
func (c *FuncCommand) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Call decodes the arguments object and invokes the handler.
//
// Required options must be present; optional (pointer) parameters arrive
// nil when omitted. Argument names not declared by the command are
// rejected rather than dropped, so schema drift surfaces immediately.
func (c *FuncCommand) Call(ctx context.Context, args json.RawMessage) (any, error) {
	raw := make(map[string]json.RawMessage)
	if len(args) > 0 {
		if err := json.Unmarshal(args, &raw); err != nil {
			return nil, fmt.Errorf("commands: %s: arguments must be a JSON object: %w", c.name, err)
		}
	}

	for key := range raw {
		if _, ok := c.paramByName(key); !ok {
			return nil, fmt.Errorf("commands: %s: %w: %q", c.name, ErrUnknownArgument, key)
		}
	}

	in := make([]reflect.Value, 0, len(c.params)+1)
	in = append(in, reflect.ValueOf(ctx))

	for _, p := range c.params {
		enc, ok := raw[p.name]
		if !ok {
			if !p.res.Optional {
				return nil, fmt.Errorf("commands: %s: %w: %q", c.name, ErrMissingArgument, p.name)
			}
			in = append(in, reflect.Zero(p.typ))
			continue
		}

		dst := reflect.New(p.typ)
		if err := json.Unmarshal(enc, dst.Interface()); err != nil {
			return nil, fmt.Errorf("commands: %s: argument %q: %w", c.name, p.name, err)
		}
		in = append(in, dst.Elem())
	}

	out := c.fn.Call(in)

	var result any
	var err error
	switch {
	case c.hasValueOut && c.hasErrOut:
		result = out[0].Interface()
		err, _ = out[1].Interface().(error)
	case c.hasErrOut:
		err, _ = out[0].Interface().(error)
	case c.hasValueOut:
		result = out[0].Interface()
	}
	return result, err
}

func (c *FuncCommand) paramByName(name string) (param, bool) {
	for _, p := range c.params {
		if p.name == name {
			return p, true
		}
	}
	return param{}, false
}
