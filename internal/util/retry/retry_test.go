package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	maxRetries := 3
	err := WithExponentialBackoff(ctx, operation,
		WithMaxRetries(maxRetries),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after max retries, got nil")
	}
	// MaxRetries is the number of retries after the first attempt
	// So total attempts = maxRetries + 1
	expectedAttempts := maxRetries + 1
	if attempts != expectedAttempts {
		t.Errorf("Expected %d attempts (1 + %d retries), got: %d", expectedAttempts, maxRetries, attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_ContextTimeout(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := WithExponentialBackoff(ctx, operation,
		WithInitialDelay(100*time.Millisecond),
		WithMaxRetries(10))

	if err == nil {
		t.Error("Expected error due to context timeout, got nil")
	}
	// Should timeout after first retry attempt (waiting 100ms but timeout is 50ms)
	if attempts > 2 {
		t.Errorf("Expected at most 2 attempts before timeout, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error, got nil")
	}
	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retries for fatal error), got: %d", attempts)
	}
}

func TestFatal(t *testing.T) {
	t.Parallel()
	t.Run("Nil error", func(t *testing.T) {
		t.Parallel()
		err := Fatal(nil)
		if err != nil {
			t.Errorf("Expected nil, got: %v", err)
		}
	})

	t.Run("Non-nil error", func(t *testing.T) {
		t.Parallel()
		originalErr := errors.New("test error")
		err := Fatal(originalErr)

		if err == nil {
			t.Error("Expected non-nil error")
		}
		if !IsFatal(err) {
			t.Error("Expected error to be fatal")
		}
		if err.Error() != originalErr.Error() {
			t.Errorf("Expected error message %q, got %q", originalErr.Error(), err.Error())
		}
	})
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	t.Run("Non-fatal error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("regular error")
		if IsFatal(err) {
			t.Error("Expected non-fatal error")
		}
	})

	t.Run("Fatal error", func(t *testing.T) {
		t.Parallel()
		err := Fatal(errors.New("fatal error"))
		if !IsFatal(err) {
			t.Error("Expected fatal error")
		}
	})

	t.Run("Wrapped fatal error", func(t *testing.T) {
		t.Parallel()
		err := Fatal(errors.New("base error"))
		wrapped := errors.Join(err, errors.New("additional context"))
		if !IsFatal(wrapped) {
			t.Error("Expected wrapped fatal error to be detected")
		}
	})
}

func TestFatalError_Unwrap(t *testing.T) {
	t.Parallel()

	t.Run("Unwrap returns underlying error", func(t *testing.T) {
		t.Parallel()
		originalErr := errors.New("original error")
		fatalErr := &FatalError{Err: originalErr}

		unwrapped := fatalErr.Unwrap()
		if unwrapped != originalErr {
			t.Errorf("Unwrap() returned %v, want %v", unwrapped, originalErr)
		}
	})

	t.Run("errors.Unwrap returns underlying error", func(t *testing.T) {
		t.Parallel()
		originalErr := errors.New("original error")
		fatalErr := Fatal(originalErr)

		unwrapped := errors.Unwrap(fatalErr)
		if unwrapped != originalErr {
			t.Errorf("errors.Unwrap() returned %v, want %v", unwrapped, originalErr)
		}
	})

	t.Run("errors.Is traverses Unwrap chain", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("sentinel error")
		fatalErr := Fatal(sentinel)

		if !errors.Is(fatalErr, sentinel) {
			t.Error("errors.Is should find sentinel through FatalError.Unwrap()")
		}
	})

	t.Run("errors.Is with fmt.Errorf wrapped fatal", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("sentinel error")
		fatalErr := Fatal(sentinel)
		doubleWrapped := fmt.Errorf("context: %w", fatalErr)

		if !errors.Is(doubleWrapped, sentinel) {
			t.Error("errors.Is should find sentinel through double-wrapped FatalError")
		}
		if !IsFatal(doubleWrapped) {
			t.Error("IsFatal should detect FatalError through fmt.Errorf wrapping")
		}
	})
}

func TestWithExponentialBackoff_NotRetryable(t *testing.T) {
	t.Parallel()
	attempts := 0
	denied := errors.New("access denied")

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return denied
	}, WithInitialDelay(time.Millisecond), WithRetryable(func(err error) bool {
		return !errors.Is(err, denied)
	}))

	if !errors.Is(err, denied) {
		t.Errorf("Expected wrapped denied error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_OnRetry(t *testing.T) {
	t.Parallel()
	var seen []int
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("throttled %d", attempts)
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMultiplier(1), WithOnRetry(func(attempt int, _ error) {
		seen = append(seen, attempt)
	}))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("Expected retry hooks for attempts [1 2], got: %v", seen)
	}
}
