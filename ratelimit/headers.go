package ratelimit

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Response header names used by the platform.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderResetAfter = "X-RateLimit-Reset-After"
	HeaderBucket     = "X-RateLimit-Bucket"
	HeaderGlobal     = "X-RateLimit-Global"
	HeaderScope      = "X-RateLimit-Scope"
)

// Bucket is the decoded rate-limit state carried by a single response.
type Bucket struct {
	// Limit is the number of requests allowed per window.
	Limit int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAfter is the time until the window resets.
	ResetAfter time.Duration
	// ResetAt is the absolute reset time.
	ResetAt time.Time
	// Key is the opaque bucket identifier shared by routes that pool a limit.
	Key string
	// Global reports whether the global limit was hit, not a route bucket.
	Global bool
	// Scope is "user", "global", or "shared" when the server reports one.
	Scope string
}

// Exhausted reports whether the bucket has no requests left.
func (b Bucket) Exhausted() bool {
	return b.Remaining <= 0
}

// ParseResetAfter returns the delay until the rate-limit bucket resets.
//
// By default it trusts X-RateLimit-Reset-After, the server's own
// measurement of the remaining window. With useClock (or when Reset-After
// is absent) it instead derives the delay from the absolute
// X-RateLimit-Reset timestamp and the local clock, which is preferable
// when the local clock is known to be synchronized and the connection
// latency is high.
func ParseResetAfter(h http.Header, useClock bool) time.Duration {
	resetAfter := h.Get(HeaderResetAfter)
	if useClock || resetAfter == "" {
		reset, err := strconv.ParseFloat(h.Get(HeaderReset), 64)
		if err != nil {
			return 0
		}
		at := unixFloat(reset)
		d := time.Until(at)
		if d < 0 {
			return 0
		}
		return d
	}
	secs, err := strconv.ParseFloat(resetAfter, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// ParseHeaders decodes the full rate-limit header set from a response.
// Numeric headers must parse when present; absent headers leave zero
// values.
func ParseHeaders(h http.Header) (Bucket, error) {
	var b Bucket

	var err error
	if v := h.Get(HeaderLimit); v != "" {
		if b.Limit, err = strconv.Atoi(v); err != nil {
			return Bucket{}, fmt.Errorf("ratelimit: bad %s header %q: %w", HeaderLimit, v, err)
		}
	}
	if v := h.Get(HeaderRemaining); v != "" {
		if b.Remaining, err = strconv.Atoi(v); err != nil {
			return Bucket{}, fmt.Errorf("ratelimit: bad %s header %q: %w", HeaderRemaining, v, err)
		}
	}
	if v := h.Get(HeaderResetAfter); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Bucket{}, fmt.Errorf("ratelimit: bad %s header %q: %w", HeaderResetAfter, v, err)
		}
		b.ResetAfter = time.Duration(secs * float64(time.Second))
	}
	if v := h.Get(HeaderReset); v != "" {
		reset, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Bucket{}, fmt.Errorf("ratelimit: bad %s header %q: %w", HeaderReset, v, err)
		}
		b.ResetAt = unixFloat(reset)
	}
	if b.ResetAt.IsZero() && b.ResetAfter > 0 {
		b.ResetAt = time.Now().Add(b.ResetAfter)
	}

	b.Key = h.Get(HeaderBucket)
	b.Global = h.Get(HeaderGlobal) == "true"
	b.Scope = h.Get(HeaderScope)
	return b, nil
}

// unixFloat converts a fractional unix-seconds timestamp.
func unixFloat(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
