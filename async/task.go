package async

import "context"

// Task is a computation whose result can be awaited exactly like an
// immediate value. A Task is created by [Go] or [Resolve] and is safe to
// await from multiple goroutines.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn in a new goroutine and returns a Task for its result.
// fn receives ctx, so canceling it reaches the computation; fn should
// honor it. The goroutine runs to completion even if every waiter gives
// up, so fn must not block forever when its context is canceled.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Resolve returns an already-completed Task holding v. This is the
// normalization half: code that sometimes has a value in hand and
// sometimes needs a fetch returns the same Task type for both.
func Resolve[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), value: v}
	close(t.done)
	return t
}

// Reject returns an already-failed Task.
func Reject[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Await blocks until the task completes or ctx is canceled, whichever
// comes first, and returns the result.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports whether the task has completed without blocking.
func (t *Task[T]) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
