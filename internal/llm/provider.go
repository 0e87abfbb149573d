package llm

import "context"

// Provider defines the interface for completion providers.
type Provider interface {
	// Complete sends one completion request and blocks until the full
	// response (or a failure) arrives. Exactly one outbound call per
	// invocation; no caching, no internal retry.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
