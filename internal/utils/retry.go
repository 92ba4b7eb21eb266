package utils

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// WaitFor calls check with exponential backoff until it succeeds, ctx is
// done, or timeout elapses. The last check error is returned.
func WaitFor(ctx context.Context, timeout time.Duration, check func(context.Context) error) error {
	b := retry.NewExponential(100 * time.Millisecond)
	b = retry.WithCappedDuration(2*time.Second, b)
	b = retry.WithMaxDuration(timeout, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := check(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
