package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Find returns the first element of seq for which pred returns true.
// The second return value reports whether a match was found.
func Find[T any](pred func(T) bool, seq []T) (T, bool) {
	for _, v := range seq {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Matcher is a single attribute condition for Get. Build one with Match.
type Matcher struct {
	path  []string
	value any
}

// Match creates a Matcher that requires the attribute at path to equal
// value. The path is a dot-separated chain of exported field names or
// zero-argument methods, each step traversed on the result of the
// previous one:
//
//	core.Get(members, core.Match("User.Name", "luna"))
//
// Pointer steps are dereferenced automatically.
func Match(path string, value any) Matcher {
	return Matcher{path: strings.Split(path, "."), value: value}
}

// Get returns the first element of seq whose attributes satisfy every
// matcher. It is a convenience over Find for simple equality lookups:
//
//	role, ok := core.Get(roles, core.Match("Name", "admin"))
//
// Attributes are resolved with reflection; a path that does not exist on
// the element type simply never matches.
func Get[T any](seq []T, matchers ...Matcher) (T, bool) {
	return Find(func(v T) bool {
		for _, m := range matchers {
			got, ok := lookupPath(reflect.ValueOf(v), m.path)
			if !ok {
				return false
			}
			if !equalValues(got, m.value) {
				return false
			}
		}
		return true
	}, seq)
}

// lookupPath walks a chain of field or method names.
func lookupPath(v reflect.Value, path []string) (any, bool) {
	for _, name := range path {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		if !v.IsValid() {
			return nil, false
		}
		// Methods take precedence so accessor-style types work.
		if m := methodByName(v, name); m.IsValid() {
			out := m.Call(nil)
			if len(out) == 0 {
				return nil, false
			}
			v = out[0]
			continue
		}
		if v.Kind() != reflect.Struct {
			return nil, false
		}
		f := v.FieldByName(name)
		if !f.IsValid() {
			return nil, false
		}
		v = f
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, true
		}
		v = v.Elem()
	}
	return v.Interface(), true
}

// methodByName resolves a nullary method on v or its address.
func methodByName(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 {
		return m
	}
	if v.CanAddr() {
		if m := v.Addr().MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 {
			return m
		}
	}
	return reflect.Value{}
}

// equalValues compares with == semantics where possible, falling back to
// DeepEqual for uncomparable types.
func equalValues(got, want any) bool {
	if got == nil || want == nil {
		return got == want
	}
	gv, wv := reflect.ValueOf(got), reflect.ValueOf(want)
	// Allow matching an int against an int64 field and similar.
	if gv.Type() != wv.Type() && wv.Type().ConvertibleTo(gv.Type()) {
		wv = wv.Convert(gv.Type())
		want = wv.Interface()
	}
	if gv.Comparable() && wv.Comparable() {
		return got == want
	}
	return reflect.DeepEqual(got, want)
}

// Unique returns seq with duplicates removed, preserving first-seen order.
func Unique[T comparable](seq []T) []T {
	seen := make(map[T]struct{}, len(seq))
	out := make([]T, 0, len(seq))
	for _, v := range seq {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MustFind is Find but panics when nothing matches. Useful in tests and
// startup wiring where absence is a programming error.
func MustFind[T any](pred func(T) bool, seq []T) T {
	v, ok := Find(pred, seq)
	if !ok {
		panic(fmt.Sprintf("core: no element of %T matched", seq))
	}
	return v
}
