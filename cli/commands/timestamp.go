package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/concordlabs/concord/core"
)

var timestampStyles = map[string]core.TimestampStyle{
	"t": core.StyleShortTime,
	"T": core.StyleLongTime,
	"d": core.StyleShortDate,
	"D": core.StyleLongDate,
	"f": core.StyleShortDateTime,
	"F": core.StyleLongDateTime,
	"R": core.StyleRelative,
}

func (a *App) newTimestampCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timestamp <when>",
		Short: "Render an inline timestamp mention",
		Long: `Render the markdown for an inline timestamp that clients display in
the viewer's locale.

<when> accepts a snowflake ID, a unix timestamp in seconds, or an
RFC 3339 time.

Example:
  concord timestamp 175928847299117063 --style R
  concord timestamp 2016-05-17T22:57:58Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseWhen(args[0])
			if err != nil {
				return err
			}

			style := core.TimestampStyle("")
			if a.tsStyle != "" {
				s, ok := timestampStyles[a.tsStyle]
				if !ok {
					return fmt.Errorf("invalid --style %q (valid: t T d D f F R)", a.tsStyle)
				}
				style = s
			}

			mention := core.FormatTimestamp(at, style)
			if a.jsonOutput {
				fmt.Fprintf(a.stdout, `{"mention":"%s","unix":%d}`+"\n", mention, at.Unix())
				return nil
			}

			fmt.Fprintln(a.stdout, mention)
			return nil
		},
	}

	cmd.Flags().StringVar(&a.tsStyle, "style", "", "timestamp style (t, T, d, D, f, F, R)")

	return cmd
}

// parseWhen resolves a user-supplied point in time. Snowflakes always
// exceed the unix-seconds range, so numeric input is unambiguous.
func parseWhen(arg string) (time.Time, error) {
	if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
		if n > 1<<40 {
			return core.Snowflake(n).Time(), nil
		}
		return time.Unix(int64(n), 0), nil
	}

	at, err := time.Parse(time.RFC3339, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as snowflake, unix seconds, or RFC 3339 time", arg)
	}
	return at, nil
}
