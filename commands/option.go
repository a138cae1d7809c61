package commands

// OptionType identifies the value type of a command option, using the
// platform's wire values.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
	OptionAttachment      OptionType = 11
)

// String returns the option type's name as used in the API docs.
func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "sub_command"
	case OptionSubCommandGroup:
		return "sub_command_group"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionMentionable:
		return "mentionable"
	case OptionNumber:
		return "number"
	case OptionAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// Choice is one entry of a fixed value set for an option.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Option describes a single command argument in the platform's
// application-command format.
type Option struct {
	Type        OptionType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Choices     []Choice   `json:"choices,omitempty"`
}
