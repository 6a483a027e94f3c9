package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	cfg := Config{
		MaxRetries:     5,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     100 * time.Millisecond,
		Multiplier:     2.0,
	}

	attempts := 0
	var waits []time.Duration
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		waits = append(waits, wait)
	}
	op := func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary failure")
		}
		return nil
	}

	start := time.Now()
	err := WithExponentialBackoff(context.Background(), cfg, op)
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	// 10ms + 20ms
	if elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms elapsed, got %v", elapsed)
	}
	if len(waits) != 2 || waits[0] != 10*time.Millisecond || waits[1] != 20*time.Millisecond {
		t.Errorf("unexpected waits reported: %v", waits)
	}
}

func TestWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	cfg := Config{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}

	attempts := 0
	expectedErr := errors.New("permanent failure")
	err := WithExponentialBackoff(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return expectedErr
	})

	if attempts != 4 {
		t.Errorf("expected 4 attempts (1 initial + 3 retries), got %d", attempts)
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error to be %v, got %v", expectedErr, err)
	}
}

func TestWithExponentialBackoff_PermanentStopsImmediately(t *testing.T) {
	cfg := Config{MaxRetries: -1, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, Multiplier: 2}

	attempts := 0
	unauthorized := errors.New("401 unauthorized")
	err := WithExponentialBackoff(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return Permanent(unauthorized)
	})

	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
	if !errors.Is(err, unauthorized) {
		t.Fatalf("expected wrapped unauthorized error, got %v", err)
	}
	if Permanent(nil) != nil {
		t.Fatal("Permanent(nil) must be nil")
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	cfg := Config{
		MaxRetries:     10,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     2.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	attempts := 0
	err := WithExponentialBackoff(ctx, cfg, func(ctx context.Context) error {
		attempts++
		return errors.New("always fails")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if attempts == 0 || attempts > 5 {
		t.Errorf("expected a few attempts before the deadline, got %d", attempts)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 30 * time.Second, Multiplier: 2}

	want := map[int]time.Duration{
		0:  0,
		1:  time.Second,
		2:  2 * time.Second,
		3:  4 * time.Second,
		5:  16 * time.Second,
		6:  30 * time.Second,
		10: 30 * time.Second,
	}
	for attempt, d := range want {
		if got := calculateBackoff(attempt, cfg); got != d {
			t.Errorf("attempt %d: got %v, want %v", attempt, got, d)
		}
	}
}

func TestCalculateBackoff_JitterStaysWithinQuarter(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, Multiplier: 2, Jitter: true}

	lo, hi := 3*time.Second, 5*time.Second
	distinct := map[time.Duration]struct{}{}
	for range 20 {
		d := calculateBackoff(3, cfg)
		if d < lo || d > hi {
			t.Fatalf("jittered backoff %v outside [%v, %v]", d, lo, hi)
		}
		distinct[d] = struct{}{}
	}
	if len(distinct) < 5 {
		t.Fatalf("expected jitter to vary the wait, got %d distinct values", len(distinct))
	}
}

func TestCalculateBackoff_JitterNeverExceedsCap(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: time.Second, Multiplier: 2, Jitter: true}
	for range 20 {
		if d := calculateBackoff(4, cfg); d > time.Second {
			t.Fatalf("backoff %v above cap", d)
		}
	}
}
