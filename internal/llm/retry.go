package llm

import (
	"context"
	"time"
)

// RetryProvider wraps a Provider with bounded retry. Only transient
// failures (transport errors and rate limiting) are retried; auth and
// schema failures surface immediately. Each retry doubles the delay.
type RetryProvider struct {
	provider   Provider
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryProvider wraps the given provider with at most maxRetries
// additional attempts after the first. A non-positive maxRetries means
// a single attempt with no retry; a non-positive baseDelay defaults to
// one second.
func NewRetryProvider(provider Provider, maxRetries int, baseDelay time.Duration) Provider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &RetryProvider{
		provider:   provider,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

func (r *RetryProvider) Name() string {
	return r.provider.Name()
}

func (r *RetryProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := r.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !Retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}
