package core

import "sync"

// Lazy is a value computed on first access and cached for the lifetime of
// the Lazy. It replaces ad-hoc "compute once" fields on cached platform
// objects (permission sets, sorted role lists) without requiring callers
// to manage their own sync.Once.
//
// Lazy is safe for concurrent use. The compute function runs at most once.
type Lazy[T any] struct {
	once sync.Once
	fn   func() T
	v    T
}

// NewLazy returns a Lazy that computes its value with fn on first Get.
func NewLazy[T any](fn func() T) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Get returns the cached value, computing it on first call.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		l.v = l.fn()
		l.fn = nil
	})
	return l.v
}
