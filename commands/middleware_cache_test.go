package commands

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWithCache(t *testing.T) {
	var calls atomic.Int32
	cmd := ApplyMiddleware(&testCommand{
		name: "lookup",
		callFn: func(ctx context.Context, args json.RawMessage) (any, error) {
			calls.Add(1)
			return "result", nil
		},
	}, WithCache(NewMemoryCache(), time.Minute))

	for i := 0; i < 3; i++ {
		result, err := cmd.Call(context.Background(), json.RawMessage(`{"id":"1"}`))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if result != "result" {
			t.Errorf("result = %v, want result", result)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("handler called %d times, want 1 (cached)", got)
	}

	// Different arguments miss the cache.
	if _, err := cmd.Call(context.Background(), json.RawMessage(`{"id":"2"}`)); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("handler called %d times, want 2", got)
	}
}

func TestWithCacheDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	cmd := ApplyMiddleware(&testCommand{
		name: "flaky",
		callFn: func(ctx context.Context, args json.RawMessage) (any, error) {
			calls.Add(1)
			return nil, errors.New("upstream down")
		},
	}, WithCache(NewMemoryCache(), time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := cmd.Call(context.Background(), nil); err == nil {
			t.Fatal("Call() should propagate handler error")
		}
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("handler called %d times, want 2 (errors not cached)", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	cache.Set("k", "v", 10*time.Millisecond)

	if _, ok := cache.Get("k"); !ok {
		t.Fatal("Get() should hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := cache.Get("k"); ok {
		t.Error("Get() should miss after expiry")
	}
}

func TestDefaultCacheKey(t *testing.T) {
	a := DefaultCacheKey("ban", json.RawMessage(`{"user":"1"}`))
	b := DefaultCacheKey("ban", json.RawMessage(`{"user":"2"}`))
	c := DefaultCacheKey("kick", json.RawMessage(`{"user":"1"}`))

	if a == b || a == c || b == c {
		t.Error("DefaultCacheKey should differ across commands and arguments")
	}
	if a != DefaultCacheKey("ban", json.RawMessage(`{"user":"1"}`)) {
		t.Error("DefaultCacheKey should be deterministic")
	}
}

func TestForCommands(t *testing.T) {
	var wrapped atomic.Int32
	marker := func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			wrapped.Add(1)
			return next(ctx, args)
		}
	}

	mw := ForCommands([]string{"ban"}, marker)

	ban := ApplyMiddleware(&testCommand{name: "ban"}, mw)
	if _, err := ban.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := wrapped.Load(); got != 1 {
		t.Errorf("middleware applied %d times to ban, want 1", got)
	}

	ping := ApplyMiddleware(&testCommand{name: "ping"}, mw)
	if _, err := ping.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := wrapped.Load(); got != 1 {
		t.Error("middleware should not apply to ping")
	}
}

func TestExceptCommands(t *testing.T) {
	var wrapped atomic.Int32
	marker := func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			wrapped.Add(1)
			return next(ctx, args)
		}
	}

	mw := ExceptCommands([]string{"ping"}, marker)

	ping := ApplyMiddleware(&testCommand{name: "ping"}, mw)
	if _, err := ping.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := wrapped.Load(); got != 0 {
		t.Error("middleware should not apply to excluded command")
	}

	ban := ApplyMiddleware(&testCommand{name: "ban"}, mw)
	if _, err := ban.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := wrapped.Load(); got != 1 {
		t.Errorf("middleware applied %d times to ban, want 1", got)
	}
}

func TestWithCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	cmd := ApplyMiddleware(&testCommand{
		name: "flaky",
		callFn: func(ctx context.Context, args json.RawMessage) (any, error) {
			calls.Add(1)
			return nil, errors.New("upstream down")
		},
	}, WithCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenDuration:     time.Hour,
	}))

	// First three failures reach the handler.
	for i := 0; i < 3; i++ {
		if _, err := cmd.Call(context.Background(), nil); err == nil {
			t.Fatal("Call() should fail")
		}
	}

	// Circuit is now open; handler no longer called.
	_, err := cmd.Call(context.Background(), nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("handler called %d times, want 3", got)
	}
}

func TestWithCircuitBreakerRecovers(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	cmd := ApplyMiddleware(&testCommand{
		name: "flaky",
		callFn: func(ctx context.Context, args json.RawMessage) (any, error) {
			if fail.Load() {
				return nil, errors.New("upstream down")
			}
			return "ok", nil
		},
	}, WithCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenDuration:     10 * time.Millisecond,
	}))

	// Trip the breaker.
	if _, err := cmd.Call(context.Background(), nil); err == nil {
		t.Fatal("Call() should fail")
	}
	if _, err := cmd.Call(context.Background(), nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("error = %v, want ErrCircuitOpen", err)
	}

	// After OpenDuration the breaker half-opens and a success closes it.
	fail.Store(false)
	time.Sleep(20 * time.Millisecond)

	if _, err := cmd.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() after recovery error = %v", err)
	}
	if _, err := cmd.Call(context.Background(), nil); err != nil {
		t.Fatalf("Call() with closed circuit error = %v", err)
	}
}

func TestCircuitStateString(t *testing.T) {
	tests := []struct {
		state CircuitState
		want  string
	}{
		{CircuitClosed, "closed"},
		{CircuitOpen, "open"},
		{CircuitHalfOpen, "half-open"},
		{CircuitState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("CircuitState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
