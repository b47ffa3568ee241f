package common

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	"skylane/concourse/internal/logging"
)

// RetryPolicy controls how a transactional operation is retried after a
// serialization failure. Delays grow geometrically: base, base*factor, ...
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
	Retryable   func(error) bool
}

// DefaultTxRetryPolicy absorbs Postgres serialization failures around the
// seat-allocation and confirmation transactions.
func DefaultTxRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   50 * time.Millisecond,
		Factor:      2,
		Retryable:   IsSerializationFailure,
	}
}

// IsSerializationFailure matches the pq error codes worth retrying:
// serialization_failure, deadlock_detected, lock_not_available.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// Retry runs op until it succeeds, exhausts attempts, or hits a
// non-retryable error. The last error is returned as-is so kinds
// survive for the caller.
func Retry(ctx context.Context, policy RetryPolicy, op func() error) error {
	delay := policy.BaseDelay
	var err error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if policy.Retryable == nil || !policy.Retryable(err) || attempt == policy.MaxAttempts {
			return err
		}
		logging.Warn("Retrying transaction after serialization failure",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * policy.Factor)
	}
	return err
}
