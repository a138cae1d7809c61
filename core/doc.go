// Package core provides the platform primitives shared by every Concord
// package: the snowflake ID codec, inline timestamp markdown, the
// three-state Option type, generic find/get query helpers, lazy values,
// secret wrapping, and API error normalization.
//
// # Snowflakes
//
// Every object on the platform is identified by a [Snowflake], a 64-bit
// integer whose top 42 bits encode the creation time:
//
//	id, _ := core.ParseSnowflake("175928847299117063")
//	created := id.Time() // 2016-04-30 11:18:25.796 UTC
//
// [TimeSnowflake] produces boundary IDs for range queries against
// ID-ordered endpoints, and [GenerateSnowflake] creates fake IDs with a
// chosen creation time:
//
//	after := core.TimeSnowflake(yesterday, false)
//	before := core.TimeSnowflake(now, true)
//
// # Query helpers
//
// [Find] and [Get] locate elements in cached object slices without
// hand-written loops:
//
//	member, ok := core.Get(members, core.Match("User.Name", "luna"))
//	role, ok := core.Find(func(r Role) bool { return r.Hoisted }, roles)
//
// Get matches attributes by reflection and supports dotted paths through
// nested structs and accessor methods.
//
// # Options
//
// The platform distinguishes fields that are absent from fields that are
// null. [Option] carries all three states and cooperates with
// encoding/json's omitzero:
//
//	type EditMember struct {
//	    Nick core.Option[string] `json:"nick,omitzero"`
//	}
//
// # Errors
//
// API failures normalize to [*APIError] wrapping one of the sentinel
// errors ([ErrRateLimited], [ErrNotFound], ...), so callers classify with
// errors.Is and inspect with errors.As.
package core
