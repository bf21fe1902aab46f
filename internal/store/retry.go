package store

import (
	"context"
	"errors"
	"time"

	"github.com/Boetie78/website-audits-sub000/internal/metrics"
)

// RetryStore wraps another Store with bounded retries and exponential
// backoff. Get does not retry on ErrNotFound.
type RetryStore struct {
	inner    Store
	attempts int
	backoff  time.Duration
}

// NewRetryStore wraps inner. attempts is the total number of tries
// (minimum 1); backoff doubles after each failure.
func NewRetryStore(inner Store, attempts int, backoff time.Duration) *RetryStore {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryStore{inner: inner, attempts: attempts, backoff: backoff}
}

// Put stores value under key, retrying transient failures.
func (s *RetryStore) Put(ctx context.Context, key string, value any) error {
	return s.do(ctx, func() error {
		return s.inner.Put(ctx, key, value)
	}, nil)
}

// Get decodes the value stored under key into dest, retrying transient
// failures.
func (s *RetryStore) Get(ctx context.Context, key string, dest any) error {
	return s.do(ctx, func() error {
		return s.inner.Get(ctx, key, dest)
	}, func(err error) bool {
		// A missing key is a definitive answer, not a transient fault.
		return !errors.Is(err, ErrNotFound)
	})
}

func (s *RetryStore) do(ctx context.Context, op func() error, retryable func(error) bool) error {
	var err error
	wait := s.backoff
	for attempt := 1; attempt <= s.attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == s.attempts {
			break
		}
		metrics.StoreRetries.Inc()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
