package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy() Policy {
	return Policy{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        2 * time.Millisecond,
		BackoffMultiplier: 2.0,
		BreakerEnabled:    false,
	}
}

func retryAll(error) Classification {
	return Classification{Retryable: true, RecordFailure: true}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	e := NewExecutor(fastPolicy())
	calls := 0

	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, retryAll)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
}

func TestExecuteRetriesRetryableErrors(t *testing.T) {
	e := NewExecutor(fastPolicy())
	calls := 0

	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, retryAll)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("got %d calls, want 3", calls)
	}
}

func TestExecuteStopsOnNonRetryable(t *testing.T) {
	e := NewExecutor(fastPolicy())
	calls := 0
	permanent := errors.New("permanent")

	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return permanent
	}, func(error) Classification {
		return Classification{Retryable: false, RecordFailure: true}
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("got %v, want permanent error", err)
	}
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	e := NewExecutor(fastPolicy())
	calls := 0
	transient := errors.New("transient")

	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return transient
	}, retryAll)
	if !errors.Is(err, transient) {
		t.Fatalf("got %v, want transient error", err)
	}
	if calls != 3 {
		t.Fatalf("got %d calls, want 3", calls)
	}
}

func TestExecuteHonorsCancelledContext(t *testing.T) {
	e := NewExecutor(fastPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, "op", func(context.Context) error {
		t.Fatal("callback must not run after cancellation")
		return nil
	}, retryAll)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	policy := fastPolicy()
	policy.MaxAttempts = 1
	policy.BreakerEnabled = true
	policy.BreakerMinRequests = 3
	policy.BreakerFailureRatio = 0.5
	policy.BreakerOpenTimeout = time.Minute
	e := NewExecutor(policy)

	fail := func(context.Context) error { return errors.New("down") }
	for i := 0; i < 3; i++ {
		_ = e.Execute(context.Background(), "op", fail, retryAll)
	}

	err := e.Execute(context.Background(), "op", fail, retryAll)
	if !IsCircuitOpen(err) {
		t.Fatalf("got %v, want open circuit", err)
	}
}

func TestExecuteNilCallback(t *testing.T) {
	e := NewExecutor(fastPolicy())
	if err := e.Execute(context.Background(), "op", nil, nil); err == nil {
		t.Fatal("expected error for nil callback")
	}
}
