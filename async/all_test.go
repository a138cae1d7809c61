package async

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestAllMixedPredicates(t *testing.T) {
	ctx := context.Background()

	for size := 10; size < 20; size++ {
		want := true
		preds := make([]Predicate, 0, size)

		for i := 0; i < size; i++ {
			value := rand.Intn(size) != 0 // mostly true
			want = want && value

			// Mix immediate booleans with deferred checks, which is the
			// point of the shared Predicate shape.
			if rand.Intn(2) == 0 {
				preds = append(preds, True(value))
			} else {
				preds = append(preds, func(context.Context) (bool, error) {
					return value, nil
				})
			}
		}

		got, err := All(ctx, preds...)
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if got != want {
			t.Errorf("All(size=%d) = %v, want %v", size, got, want)
		}
	}
}

func TestAllEmpty(t *testing.T) {
	got, err := All(context.Background())
	if err != nil || !got {
		t.Errorf("All() = (%v, %v), want (true, nil)", got, err)
	}
}

func TestAllShortCircuits(t *testing.T) {
	started := time.Now()

	got, err := All(context.Background(),
		True(false),
		func(ctx context.Context) (bool, error) {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(5 * time.Second):
				return true, nil
			}
		},
	)

	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if got {
		t.Error("All() = true, want false")
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Errorf("All() took %v, want prompt short-circuit", elapsed)
	}
}

func TestAllPropagatesError(t *testing.T) {
	boom := errors.New("permission fetch failed")

	_, err := All(context.Background(),
		True(true),
		func(context.Context) (bool, error) { return false, boom },
	)
	if !errors.Is(err, boom) {
		t.Errorf("All() error = %v, want %v", err, boom)
	}
}

func TestAllFalseBeatsError(t *testing.T) {
	// A definitive false resolves the conjunction even when a sibling
	// errors from the resulting cancellation.
	got, err := All(context.Background(),
		True(false),
		func(ctx context.Context) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		},
	)
	if err != nil {
		t.Errorf("All() error = %v, want nil when a predicate is false", err)
	}
	if got {
		t.Error("All() = true, want false")
	}
}
