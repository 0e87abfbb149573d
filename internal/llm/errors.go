package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Sentinel errors classifying completion failures. Providers wrap the
// underlying error so callers can branch with errors.Is while keeping
// the original detail in the chain.
var (
	// ErrMissingCredential indicates a required API key is absent from
	// the environment. Raised at provider construction, never per call.
	ErrMissingCredential = errors.New("missing credential")
	// ErrAuth indicates the provider rejected the supplied credential.
	ErrAuth = errors.New("authentication rejected")
	// ErrRateLimited indicates provider-side rate limiting or quota
	// exhaustion. Retryable.
	ErrRateLimited = errors.New("rate limited")
	// ErrTransport indicates a network-level failure or timeout, or a
	// provider-side outage. Retryable.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse indicates the provider returned a reply that
	// violates the expected schema.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrEmptyResponse indicates the candidate list was empty. A kind
	// of malformed response; errors.Is matches both.
	ErrEmptyResponse = fmt.Errorf("%w: empty candidate list", ErrMalformedResponse)
)

// Retryable reports whether the error is a transient condition worth
// retrying: transport failures and rate limiting.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrRateLimited)
}

// classifyStatus maps an HTTP status code to the matching sentinel.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuth
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrTransport
	default:
		return nil
	}
}

// wrapAPIError classifies an error returned by the go-openai client and
// wraps it with the matching sentinel. Context expiry counts as a
// transport failure so a bounded wait remains retryable.
func wrapAPIError(provider string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if kind := classifyStatus(apiErr.HTTPStatusCode); kind != nil {
			return fmt.Errorf("%s: %w: %w", provider, kind, err)
		}
		return fmt.Errorf("%s: %w", provider, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if kind := classifyStatus(reqErr.HTTPStatusCode); kind != nil {
			return fmt.Errorf("%s: %w: %w", provider, kind, err)
		}
		return fmt.Errorf("%s: %w", provider, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", provider, ErrTransport, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", provider, err)
	}
	// Anything else from the HTTP layer is a transport problem.
	return fmt.Errorf("%s: %w: %w", provider, ErrTransport, err)
}

// wrapHTTPStatus classifies a raw HTTP status from a direct-HTTP
// provider, returning nil for success statuses.
func wrapHTTPStatus(provider string, status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}
	if kind := classifyStatus(status); kind != nil {
		return fmt.Errorf("%s: %w: status %d: %s", provider, kind, status, body)
	}
	return fmt.Errorf("%s: unexpected status %d: %s", provider, status, body)
}
