package central

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a request throttled by the per-second window
// is reissued, and how long to pause when the gateway does not advertise a
// Retry-After interval. The per-day window is never retried.
type RetryPolicy struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
}

// DefaultRetryPolicy waits out one per-second window and gives up after a
// single retry.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  1,
		InitialWait: 2 * time.Second,
		MaxWait:     30 * time.Second,
	}
}

func (p RetryPolicy) maxRetries() int {
	if p.MaxRetries <= 0 {
		return DefaultRetryPolicy().MaxRetries
	}
	return p.MaxRetries
}

// newBackOff builds the fallback wait schedule used when a 429 carries no
// Retry-After header.
func (p RetryPolicy) newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialWait
	if bo.InitialInterval <= 0 {
		bo.InitialInterval = DefaultRetryPolicy().InitialWait
	}
	bo.MaxInterval = p.MaxWait
	if bo.MaxInterval <= 0 {
		bo.MaxInterval = DefaultRetryPolicy().MaxWait
	}
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

// sleep blocks for the wait interval or until the context is cancelled.
func sleep(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
