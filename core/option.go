package core

import (
	"bytes"
	"encoding/json"
)

// Option is a three-state value distinguishing "absent from the payload"
// from "explicitly null" from "present". The platform treats these
// differently: omitting a field leaves it untouched, sending null clears
// it.
//
// The zero value of Option is the missing state.
type Option[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// Null returns an Option that is present but explicitly null.
func Null[T any]() Option[T] {
	return Option[T]{present: true, null: true}
}

// None returns the missing Option. Equivalent to the zero value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the contained value and whether one is present and non-null.
func (o Option[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// OrElse returns the contained value, or fallback when missing or null.
func (o Option[T]) OrElse(fallback T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return fallback
}

// IsMissing reports whether the value was absent entirely.
func (o Option[T]) IsMissing() bool {
	return !o.present
}

// IsNull reports whether the value is an explicit null.
func (o Option[T]) IsNull() bool {
	return o.present && o.null
}

// IsZero reports whether the option is missing. This makes Option work
// with encoding/json's omitzero struct tag option, which is how missing
// fields stay off the wire.
func (o Option[T]) IsZero() bool {
	return !o.present
}

// MarshalJSON encodes null for the null state and the value otherwise.
// Missing options rely on omitzero to stay out of the payload; when
// marshaled directly they also encode as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null into the null state and anything else into
// the value state. A field that never appears keeps the zero (missing)
// state.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
