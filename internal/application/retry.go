package application

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/quickcommerce/order-payment-service/internal/domain"
)

// conflictRetry reruns op once when the store reports a concurrent
// modification, then surfaces the conflict to the caller.
func conflictRetry(ctx context.Context, op func(context.Context) error) error {
	backoff := retry.WithMaxRetries(1, retry.NewConstant(50*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if errors.Is(err, domain.ErrConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
}
