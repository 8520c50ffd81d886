package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        2 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestRetryWithBackoff_Success(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(3), zerolog.Nop(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_NonRetryable(t *testing.T) {
	calls := 0
	want := &APIError{StatusCode: 400, Class: ErrorClassClient}
	err := retryWithBackoff(context.Background(), fastRetry(3), zerolog.Nop(), func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_UnclassifiedNotRetried(t *testing.T) {
	calls := 0
	_ = retryWithBackoff(context.Background(), fastRetry(3), zerolog.Nop(), func() error {
		calls++
		return errors.New("boom")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_Exhausted(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(3), zerolog.Nop(), func() error {
		calls++
		return &APIError{StatusCode: 503, Class: ErrorClassServer}
	})
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_RecoversAfterNetworkError(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(3), zerolog.Nop(), func() error {
		calls++
		if calls == 1 {
			return &APIError{Class: ErrorClassNetwork}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(5)
	cfg.InitialBackoff = time.Second

	calls := 0
	err := retryWithBackoff(ctx, cfg, zerolog.Nop(), func() error {
		calls++
		cancel()
		return &APIError{Class: ErrorClassServer}
	})
	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("error = %v, want ErrContextCancelled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, should wrap context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_ZeroAttempts(t *testing.T) {
	calls := 0
	_ = retryWithBackoff(context.Background(), RetryConfig{}, zerolog.Nop(), func() error {
		calls++
		return &APIError{Class: ErrorClassServer}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
