package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultDelay = 100 * time.Millisecond

type Backoff func(attempt int) time.Duration

type ShouldRetry func(error) bool

// A Delayer is an error telling how long to wait before the next attempt,
// for example from a Retry-After header. A zero delay falls back to the
// backoff.
type Delayer interface {
	RetryDelay() time.Duration
}

type RetryConfig struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry

	// MaxDelay caps every wait. Zero means no cap.
	MaxDelay time.Duration
}

func (c *RetryConfig) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = ExponentialBackoff(defaultDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

func (c *RetryConfig) delay(attempt int, err error) time.Duration {
	d := c.Backoff(attempt)

	var delayer Delayer
	if errors.As(err, &delayer) {
		if hint := delayer.RetryDelay(); hint > 0 {
			d = hint
		}
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// ExponentialBackoff doubles the delay with every attempt and adds up to
// half of it as jitter. A non-positive delay means no wait.
func ExponentialBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if delay <= 0 {
			return 0
		}
		base := 1 << attempt * delay
		if half := int64(base / 2); half > 0 {
			base += time.Duration(rand.Int64N(half) + 1)
		}
		return base
	}
}

func LinearBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration {
		return delay
	}
}

func Do(ctx context.Context, c RetryConfig, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult calls fn until it succeeds, the error is not retryable or
// the attempts run out. The last error is returned.
func DoWithResult[T any](ctx context.Context, c RetryConfig, fn func() (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()
	var timer *time.Timer

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if attempt == c.MaxAttempts || !c.ShouldRetry(err) {
			return zero, err
		}

		wait := c.delay(attempt, err)
		if timer == nil {
			timer = time.NewTimer(wait)
			defer timer.Stop()
		} else {
			timer.Reset(wait)
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}
