package config

// defaultModels maps each provider to its default completion model.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:     "gpt-3.5-turbo-instruct",
	ProviderOpenRouter: "meta-llama/llama-3.1-70b-instruct",
	ProviderAnthropic:  "claude-haiku-4-5-20251001",
	ProviderOllama:     "llama3",
}

// DefaultModel returns the default completion model for a provider.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}

// DefaultConfig returns a Config with sensible defaults: deterministic
// decoding, one-sentence output budget, a 30-second bounded wait, and
// one retry for transient failures.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             defaultModels[ProviderOpenAI],
		Temperature:       0,
		MaxTokens:         64,
		TimeoutSeconds:    30,
		MaxRetries:        1,
		RequestsPerMinute: 20,
		Labels:            "none",
		FewShot:           true,
		HistoryDB:         ".trendtell/history.db",
		ServePort:         8080,
	}
}
