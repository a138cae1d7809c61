package core

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Epoch is the platform epoch: the first millisecond of 2015, UTC.
// All snowflake timestamps are offsets from this instant.
const Epoch int64 = 1420070400000

// Snowflake is a 64-bit platform identifier. The top 42 bits encode the
// creation time in milliseconds since Epoch; the low 22 bits carry worker,
// process, and increment fields.
//
// Snowflakes travel as JSON strings on the wire because they exceed the
// safe integer range of JavaScript clients.
type Snowflake uint64

// Bit layout of the low 22 bits.
const (
	timestampShift = 22
	workerShift    = 17
	processShift   = 12

	workerMask    = 0x3E0000
	processMask   = 0x1F000
	incrementMask = 0xFFF
	lowBitsMask   = 0x3FFFFF
)

// Time returns the creation time encoded in the snowflake, in UTC with
// millisecond precision.
func (s Snowflake) Time() time.Time {
	millis := int64(s>>timestampShift) + Epoch
	return time.UnixMilli(millis).UTC()
}

// Worker returns the internal worker ID field.
func (s Snowflake) Worker() uint8 {
	return uint8((uint64(s) & workerMask) >> workerShift)
}

// Process returns the internal process ID field.
func (s Snowflake) Process() uint8 {
	return uint8((uint64(s) & processMask) >> processShift)
}

// Increment returns the per-process increment field.
func (s Snowflake) Increment() uint16 {
	return uint16(uint64(s) & incrementMask)
}

// IsZero reports whether the snowflake is the zero value.
func (s Snowflake) IsZero() bool {
	return s == 0
}

// String returns the decimal representation used on the wire.
func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalJSON encodes the snowflake as a JSON string.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either a JSON string or a bare number.
// The platform documents strings, but some gateways emit numbers.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Fall back to a bare number.
		var n uint64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("snowflake: cannot unmarshal %s", data)
		}
		*s = Snowflake(n)
		return nil
	}
	parsed, err := ParseSnowflake(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSnowflake parses the decimal wire representation of a snowflake.
func ParseSnowflake(str string) (Snowflake, error) {
	n, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("snowflake: invalid ID %q: %w", str, err)
	}
	return Snowflake(n), nil
}

// TimeSnowflake returns a boundary snowflake for the given time, suitable
// for range queries against ID-ordered endpoints.
//
// With high=false the low 22 bits are zeroed, producing the smallest
// snowflake at that millisecond; with high=true they are all ones,
// producing the largest. To select objects created within [a, b), pass
// TimeSnowflake(a, false) and TimeSnowflake(b, false).
func TimeSnowflake(t time.Time, high bool) Snowflake {
	millis := uint64(t.UnixMilli() - Epoch)
	s := millis << timestampShift
	if high {
		s |= lowBitsMask
	}
	return Snowflake(s)
}

// GenerateSnowflake creates a snowflake with the given creation time and
// randomized low bits. It is intended for fake or locally generated IDs;
// uniqueness is probabilistic, not guaranteed.
func GenerateSnowflake(t time.Time) Snowflake {
	millis := uint64(t.UnixMilli() - Epoch)
	return Snowflake(millis<<timestampShift | uint64(rand.Int63n(lowBitsMask+1)))
}

// Now returns a generated snowflake for the current time.
func Now() Snowflake {
	return GenerateSnowflake(time.Now())
}
