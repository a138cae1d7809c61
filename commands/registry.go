package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateCommand is returned when attempting to register a command
// with a name that is already registered.
var ErrDuplicateCommand = errors.New("command already registered")

// Registry manages a collection of commands indexed by name.
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a new empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns ErrDuplicateCommand if a command with the same name is already
// registered.
func (r *Registry) Register(c Command) error {
	if c == nil {
		return errors.New("command cannot be nil")
	}

	name := c.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return ErrDuplicateCommand
	}

	r.commands[name] = c
	return nil
}

// Get retrieves a command by name.
// Returns the command and true if found, or nil and false if not found.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.commands[name]
	return c, ok
}

// List returns all registered commands.
// The returned slice is a copy and safe to modify.
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		result = append(result, c)
	}
	return result
}

// Dispatch routes an invocation to its command and calls it.
// Returns an error if the command is not found or if execution fails.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) (any, error) {
	cmd, ok := r.Get(inv.Name)
	if !ok {
		return nil, fmt.Errorf("command %q not found", inv.Name)
	}
	return cmd.Call(ctx, inv.Arguments)
}

// Execute finds a command by name and calls it with the given arguments.
// Returns an error if the command is not found or if execution fails.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (any, error) {
	cmd, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("command %q not found", name)
	}
	return cmd.Call(ctx, args)
}
