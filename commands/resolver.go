package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/concordlabs/concord/core"
)

// Resolution errors.
var (
	// ErrUnsupportedType is returned for parameter types with no option
	// representation (structs, maps, channels, ...).
	ErrUnsupportedType = errors.New("unsupported option type")

	// ErrNestedOptional is returned for doubly-optional parameters such
	// as **T: an option is either required or optional, and a second
	// level of absence has no wire representation.
	ErrNestedOptional = errors.New("optional of optional")

	// ErrAmbiguousUnion is returned for interface parameters. An
	// interface admits more than one concrete alternative, and an option
	// must resolve to exactly one value type.
	ErrAmbiguousUnion = errors.New("ambiguous union")

	// ErrMixedChoices is returned when a choice set mixes value types or
	// contains values that are not strings, integers, or numbers.
	ErrMixedChoices = errors.New("mixed choice values")
)

// Resolved is the outcome of resolving a Go type to an option shape.
type Resolved struct {
	Type     OptionType
	Optional bool
	Choices  []Choice
}

// Resolver maps Go parameter types to command option types. Resolution
// results are cached by type identity, so repeated signature scans over
// the same types are cheap.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	mu      sync.RWMutex
	cache   map[reflect.Type]Resolved
	kinds   map[reflect.Type]OptionType
	choices map[reflect.Type][]Choice
}

// NewResolver creates a Resolver with only the built-in kind mappings.
func NewResolver() *Resolver {
	return &Resolver{
		cache:   make(map[reflect.Type]Resolved),
		kinds:   make(map[reflect.Type]OptionType),
		choices: make(map[reflect.Type][]Choice),
	}
}

// DefaultResolver is the resolver used by NewFunc. It maps
// core.Snowflake to the mentionable option type out of the box.
var DefaultResolver = func() *Resolver {
	r := NewResolver()
	r.RegisterKind(reflect.TypeOf(core.Snowflake(0)), OptionMentionable)
	return r
}()

// RegisterKind maps a concrete Go type to an option type, overriding the
// kind-based defaults. SDK layers use this to bind their user, channel,
// and role ID types to the matching option types.
func (r *Resolver) RegisterKind(t reflect.Type, ot OptionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[t] = ot
	clear(r.cache)
}

// RegisterChoices fixes the value set for a named type, the analog of a
// literal annotation: a parameter declared with type t becomes an option
// restricted to the given choices.
//
// Choice values must all share one of the three wire value types
// (string, integer, number) and that type must agree with t's own kind;
// anything else returns ErrMixedChoices.
func (r *Resolver) RegisterChoices(t reflect.Type, choices []Choice) error {
	base, err := kindOptionType(t)
	if err != nil {
		return err
	}
	if base == OptionBoolean {
		return fmt.Errorf("commands: %w: boolean options cannot carry choices", ErrMixedChoices)
	}
	for i, c := range choices {
		ct, err := classifyChoiceValue(c.Value)
		if err != nil {
			return err
		}
		if ct != base {
			return fmt.Errorf("commands: %w: choice %q is %s, type %s wants %s",
				ErrMixedChoices, c.Name, ct, t, base)
		}
		if c.Name == "" {
			choices[i].Name = fmt.Sprint(c.Value)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.choices[t] = choices
	clear(r.cache)
	return nil
}

// Resolve maps a Go type to its option shape. Pointer types and
// core.Option instantiations resolve to the optional form of their
// element; registered kinds and choice sets take precedence over the
// kind-based defaults.
//
// Successful resolutions are cached by type identity.
func (r *Resolver) Resolve(t reflect.Type) (Resolved, error) {
	r.mu.RLock()
	res, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return res, nil
	}

	res, err := r.resolve(t, false)
	if err != nil {
		return Resolved{}, err
	}

	r.mu.Lock()
	r.cache[t] = res
	r.mu.Unlock()
	return res, nil
}

func (r *Resolver) resolve(t reflect.Type, optional bool) (Resolved, error) {
	if t.Kind() == reflect.Pointer {
		if optional {
			return Resolved{}, fmt.Errorf("commands: %w: %s", ErrNestedOptional, t)
		}
		res, err := r.resolve(t.Elem(), true)
		if err != nil {
			return Resolved{}, err
		}
		res.Optional = true
		return res, nil
	}

	if isOptionType(t) {
		if optional {
			return Resolved{}, fmt.Errorf("commands: %w: %s", ErrNestedOptional, t)
		}
		res, err := r.resolve(t.Field(0).Type, true)
		if err != nil {
			return Resolved{}, err
		}
		res.Optional = true
		return res, nil
	}

	if t.Kind() == reflect.Interface {
		return Resolved{}, fmt.Errorf("commands: %w: %s", ErrAmbiguousUnion, t)
	}

	r.mu.RLock()
	registered, hasKind := r.kinds[t]
	choices, hasChoices := r.choices[t]
	r.mu.RUnlock()

	if hasChoices {
		base, err := kindOptionType(t)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Type: base, Optional: optional, Choices: choices}, nil
	}
	if hasKind {
		return Resolved{Type: registered, Optional: optional}, nil
	}

	base, err := kindOptionType(t)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Type: base, Optional: optional}, nil
}

// optionPkgPath locates core.Option instantiations by package path, since
// reflect exposes no direct handle on generic type families.
var optionPkgPath = reflect.TypeOf(core.Option[int]{}).PkgPath()

// isOptionType reports whether t is an instantiation of core.Option.
// Its first field is the wrapped value, which carries the element type.
func isOptionType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == optionPkgPath &&
		strings.HasPrefix(t.Name(), "Option[")
}

// kindOptionType maps a non-pointer Go kind to its default option type.
func kindOptionType(t reflect.Type) (OptionType, error) {
	switch t.Kind() {
	case reflect.String:
		return OptionString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return OptionInteger, nil
	case reflect.Bool:
		return OptionBoolean, nil
	case reflect.Float32, reflect.Float64:
		return OptionNumber, nil
	default:
		return 0, fmt.Errorf("commands: %w: %s", ErrUnsupportedType, t)
	}
}

// classifyChoiceValue maps a choice value to its wire value type.
func classifyChoiceValue(v any) (OptionType, error) {
	switch v.(type) {
	case string:
		return OptionString, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return OptionInteger, nil
	case float32, float64:
		return OptionNumber, nil
	default:
		return 0, fmt.Errorf("commands: %w: %T is not a legal choice value", ErrMixedChoices, v)
	}
}
