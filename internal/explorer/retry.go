package explorer

import (
	"context"
	"errors"
	"time"

	"volumeScope/internal/model"
)

// RetryPolicy bounds per-page retries and paces successive page requests to
// the same endpoint. One policy value is shared by every call site.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	PageDelay   time.Duration
}

// DefaultRetryPolicy matches the upstream provider's published limits: three
// attempts with doubling backoff from one second, and a two second pause
// between pages against the shared 5 req/s budget.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		PageDelay:   2 * time.Second,
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 100 * time.Millisecond
	}
	if p.PageDelay < 0 {
		p.PageDelay = 0
	}
	return p
}

func withRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= maxAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

// retryable excludes the explicit busy signal: an overloaded provider is
// unlikely to recover within the backoff window, so it is surfaced at once.
func retryable(err error) bool {
	var busy *model.ProviderBusyError
	return !errors.As(err, &busy)
}
