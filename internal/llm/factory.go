package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a new completion provider based on the given
// provider type and model. The API key is read from the environment
// once, here; a missing key is a configuration error at construction
// time, never a per-call failure.
// Supported provider types: "openai", "openrouter", "anthropic", "ollama".
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrMissingCredential)
		}
		return NewOpenAIProvider(apiKey, model), nil

	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY environment variable is not set", ErrMissingCredential)
		}
		return NewOpenRouterProvider(apiKey, model), nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY environment variable is not set", ErrMissingCredential)
		}
		return NewAnthropicProvider(apiKey, model), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
