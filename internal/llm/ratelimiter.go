package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// rateLimiterPoll is how often a blocked call re-checks the bucket.
const rateLimiterPoll = 100 * time.Millisecond

// RateLimitedProvider meters completion calls through a token bucket
// so that a burst of descriptions (a batch run in particular) stays
// under the provider's requests-per-minute quota instead of tripping
// server-side limits.
type RateLimitedProvider struct {
	provider   Provider
	rpm        int
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
}

// NewRateLimitedProvider wraps the given provider with a limiter that
// allows at most rpm completion calls per minute. The bucket starts
// full, so a short burst up to rpm goes through unthrottled.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	return &RateLimitedProvider{
		provider:   provider,
		rpm:        rpm,
		tokens:     rpm,
		lastRefill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

// acquire blocks until a token is available or the context ends. A
// deadline that expires while throttled surfaces as ErrTransport, the
// same retryable classification a timed-out call gets; caller
// cancellation passes through unclassified.
func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	for {
		if r.takeToken() {
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%s: %w: %w", r.provider.Name(), ErrTransport, ctx.Err())
			}
			return fmt.Errorf("%s: %w", r.provider.Name(), ctx.Err())
		case <-time.After(rateLimiterPoll):
		}
	}
}

// takeToken refills the bucket for elapsed time and consumes one token
// if any are available.
func (r *RateLimitedProvider) takeToken() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	refill := int(now.Sub(r.lastRefill).Seconds() * float64(r.rpm) / 60.0)
	if refill > 0 {
		r.tokens += refill
		if r.tokens > r.rpm {
			r.tokens = r.rpm
		}
		r.lastRefill = now
	}

	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}
