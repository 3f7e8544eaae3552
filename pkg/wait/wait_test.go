package wait

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUntil_ConditionMet(t *testing.T) {
	calls := 0
	err := Until(context.Background(), "page", time.Millisecond, time.Second, func(ctx context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 checks, got %d", calls)
	}
}

func TestUntil_ImmediateCheck(t *testing.T) {
	calls := 0
	err := Until(context.Background(), "page", time.Hour, time.Second, func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single immediate check, got %d", calls)
	}
}

func TestUntil_Timeout(t *testing.T) {
	err := Until(context.Background(), "results", 5*time.Millisecond, 30*time.Millisecond, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestUntil_ConditionError(t *testing.T) {
	probeErr := errors.New("target closed")
	err := Until(context.Background(), "page", time.Millisecond, time.Second, func(ctx context.Context) (bool, error) {
		return false, probeErr
	})
	if !errors.Is(err, probeErr) {
		t.Fatalf("expected probe error, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("probe error must not be reported as a timeout")
	}
}

func TestUntil_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, "page", time.Millisecond, time.Second, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUntil_InvalidTimeout(t *testing.T) {
	err := Until(context.Background(), "page", time.Millisecond, 0, func(ctx context.Context) (bool, error) {
		return true, nil
	})
	if err == nil {
		t.Fatal("expected error for zero timeout")
	}
}
