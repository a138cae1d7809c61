package commands

import "encoding/json"

// ParseArgs parses invocation arguments into a typed struct.
// It unmarshals the JSON arguments from the Invocation into the target
// type T.
//
// Example:
//
//	type BanArgs struct {
//	    User   core.Snowflake `json:"user"`
//	    Reason string         `json:"reason"`
//	}
//
//	args, err := commands.ParseArgs[BanArgs](inv)
//	if err != nil {
//	    return nil, err
//	}
//	// Use args.User, args.Reason
func ParseArgs[T any](inv Invocation) (*T, error) {
	var result T
	if err := json.Unmarshal(inv.Arguments, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
