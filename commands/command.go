package commands

import (
	"context"
	"encoding/json"

	"github.com/concordlabs/concord/core"
)

// Command defines the interface for slash commands.
// Commands declare an option schema for argument validation and a Call
// method for execution.
type Command interface {
	// Name returns the unique identifier for this command.
	Name() string

	// Description returns a human-readable description shown in the
	// client's command picker.
	Description() string

	// Options returns the argument schema in the platform's
	// application-command option format.
	Options() []Option

	// Call executes the command with the given arguments.
	// The args parameter is a JSON object mapping option names to values,
	// exactly as received from the platform.
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// Invocation is a single command call received from the platform.
// Arguments MUST be valid JSON bytes and MUST preserve raw JSON
// (no reformatting).
type Invocation struct {
	ID        core.Snowflake  `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}
