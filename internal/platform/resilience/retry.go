package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Retry runs op until it succeeds, returns a Permanent error, or MaxAttempts is reached.
// notify, when set, is called before every wait.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func(context.Context) (T, error), notify func(attempt int, err error, wait time.Duration)) (T, error) {
	cfg = NormalizeRetryConfig(cfg)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialInterval
	policy.MaxInterval = cfg.MaxInterval

	attempt := 0
	return backoff.Retry(ctx,
		func() (T, error) {
			attempt++
			return op(ctx)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(cfg.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			if notify != nil {
				notify(attempt, err, wait)
			}
		}),
	)
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
