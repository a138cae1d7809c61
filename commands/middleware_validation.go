package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// WithValidation creates middleware that validates the arguments object
// against the command's option schema before the handler runs: arguments
// must be a JSON object, every name must be declared, required options
// must be present, values must match the option's wire type, and choice
// options must use one of their choices.
func WithValidation() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			cc := CallContextFromContext(ctx)
			if cc == nil {
				// Without a schema to check against, pass through.
				return next(ctx, args)
			}

			if err := validateArgs(cc.Options, args); err != nil {
				return nil, fmt.Errorf("argument validation failed: %w", err)
			}
			return next(ctx, args)
		}
	}
}

// WithBasicValidation creates middleware that only checks the arguments
// are well-formed JSON.
func WithBasicValidation() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			if len(args) > 0 && !json.Valid(args) {
				return nil, errors.New("invalid JSON arguments")
			}
			return next(ctx, args)
		}
	}
}

func validateArgs(options []Option, args json.RawMessage) error {
	raw := make(map[string]json.RawMessage)
	if len(args) > 0 {
		if err := json.Unmarshal(args, &raw); err != nil {
			return fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	byName := make(map[string]Option, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}

	for name := range raw {
		if _, ok := byName[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownArgument, name)
		}
	}

	for _, opt := range options {
		enc, ok := raw[opt.Name]
		if !ok {
			if opt.Required {
				return fmt.Errorf("%w: %q", ErrMissingArgument, opt.Name)
			}
			continue
		}
		if err := validateValue(opt, enc); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(opt Option, enc json.RawMessage) error {
	switch opt.Type {
	case OptionString, OptionUser, OptionChannel, OptionRole, OptionMentionable, OptionAttachment:
		// Reference options travel as snowflake strings.
		var s string
		if err := json.Unmarshal(enc, &s); err != nil {
			return fmt.Errorf("option %q: expected a string, got %s", opt.Name, enc)
		}
	case OptionInteger:
		var n int64
		if err := json.Unmarshal(enc, &n); err != nil {
			return fmt.Errorf("option %q: expected an integer, got %s", opt.Name, enc)
		}
	case OptionNumber:
		var f float64
		if err := json.Unmarshal(enc, &f); err != nil {
			return fmt.Errorf("option %q: expected a number, got %s", opt.Name, enc)
		}
	case OptionBoolean:
		var b bool
		if err := json.Unmarshal(enc, &b); err != nil {
			return fmt.Errorf("option %q: expected a boolean, got %s", opt.Name, enc)
		}
	}

	if len(opt.Choices) > 0 {
		var got any
		if err := json.Unmarshal(enc, &got); err != nil {
			return fmt.Errorf("option %q: %w", opt.Name, err)
		}
		for _, c := range opt.Choices {
			if choiceEqual(c.Value, got) {
				return nil
			}
		}
		return fmt.Errorf("option %q: %s is not one of the declared choices", opt.Name, enc)
	}
	return nil
}

// choiceEqual compares a declared choice value with a decoded JSON value,
// where every JSON number arrives as float64.
func choiceEqual(declared, got any) bool {
	if s, ok := declared.(string); ok {
		g, ok := got.(string)
		return ok && g == s
	}
	g, ok := got.(float64)
	if !ok {
		return false
	}
	v := reflect.ValueOf(declared)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return g == float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return g == float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return g == v.Float()
	default:
		return false
	}
}
