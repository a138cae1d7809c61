// Package ratelimit parses the platform's X-RateLimit response headers and
// provides client-side limiters for pacing requests against them.
//
// [ParseResetAfter] answers the one question retry loops ask, "how long
// until this bucket resets", honoring the documented precedence between
// the Reset-After and Reset headers. [ParseHeaders] decodes the full
// header set into a [Bucket]. For proactive pacing, [NewTokenBucket]
// implements a context-aware token bucket and [NewHeaderLimiter] tracks a
// server bucket from observed responses.
package ratelimit
