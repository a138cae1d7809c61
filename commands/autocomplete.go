package commands

import (
	"context"
	"fmt"
	"strings"
)

// AutocompleteContext carries the state of a partially typed option.
type AutocompleteContext struct {
	// Command is the command being completed.
	Command string
	// Option is the focused option.
	Option string
	// Value is the partial value the user has typed so far.
	Value string
}

// AutocompleteFunc produces suggestions for a partially typed option.
type AutocompleteFunc func(ctx context.Context, ac AutocompleteContext) ([]string, error)

// BasicAutocomplete builds an AutocompleteFunc that suggests entries from
// source matching the typed prefix, case-insensitively.
//
// source normalizes three shapes to one callback, so static lists and
// lookups that need work share a single registration path:
//   - []string: a fixed suggestion list
//   - func(AutocompleteContext) []string: computed per call
//   - func(context.Context, AutocompleteContext) ([]string, error):
//     computed per call with cancellation and failure
//
// Any other source type yields a callback that always errors.
func BasicAutocomplete(source any) AutocompleteFunc {
	var fetch func(ctx context.Context, ac AutocompleteContext) ([]string, error)

	switch src := source.(type) {
	case []string:
		fetch = func(context.Context, AutocompleteContext) ([]string, error) {
			return src, nil
		}
	case func(AutocompleteContext) []string:
		fetch = func(_ context.Context, ac AutocompleteContext) ([]string, error) {
			return src(ac), nil
		}
	case func(context.Context, AutocompleteContext) ([]string, error):
		fetch = src
	default:
		return func(context.Context, AutocompleteContext) ([]string, error) {
			return nil, fmt.Errorf("commands: unsupported autocomplete source %T", source)
		}
	}

	return func(ctx context.Context, ac AutocompleteContext) ([]string, error) {
		values, err := fetch(ctx, ac)
		if err != nil {
			return nil, err
		}

		prefix := strings.ToLower(ac.Value)
		matches := make([]string, 0, len(values))
		for _, v := range values {
			if strings.HasPrefix(strings.ToLower(v), prefix) {
				matches = append(matches, v)
			}
		}
		return matches, nil
	}
}
