package core

import (
	"fmt"
	"time"
)

// TimestampStyle selects how clients render an inline timestamp.
type TimestampStyle string

const (
	// StyleShortTime renders as "22:57".
	StyleShortTime TimestampStyle = "t"
	// StyleLongTime renders as "22:57:58".
	StyleLongTime TimestampStyle = "T"
	// StyleShortDate renders as "17/05/2016".
	StyleShortDate TimestampStyle = "d"
	// StyleLongDate renders as "17 May 2016".
	StyleLongDate TimestampStyle = "D"
	// StyleShortDateTime renders as "17 May 2016 22:57". Client default.
	StyleShortDateTime TimestampStyle = "f"
	// StyleLongDateTime renders as "Tuesday, 17 May 2016 22:57".
	StyleLongDateTime TimestampStyle = "F"
	// StyleRelative renders as "5 months ago".
	StyleRelative TimestampStyle = "R"
)

// FormatTimestamp returns the markdown for an inline timestamp that clients
// render in the viewer's locale and timezone. An empty style omits the
// style suffix and lets the client pick its default.
func FormatTimestamp(t time.Time, style TimestampStyle) string {
	if style == "" {
		return fmt.Sprintf("<t:%d>", t.Unix())
	}
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}
