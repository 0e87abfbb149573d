package config

// ProviderType identifies a completion provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level trendtell configuration, corresponding to
// .trendtell.yml.
type Config struct {
	Provider    ProviderType `yaml:"provider" koanf:"provider"`
	Model       string       `yaml:"model" koanf:"model"`
	Temperature float64      `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int          `yaml:"max_tokens" koanf:"max_tokens"`

	// TimeoutSeconds bounds each completion call; expiry is treated as
	// a retryable transport failure.
	TimeoutSeconds int `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	// MaxRetries is the bounded retry budget for transient failures.
	MaxRetries int `yaml:"max_retries" koanf:"max_retries"`
	// RequestsPerMinute throttles outbound calls; 0 disables throttling.
	RequestsPerMinute int `yaml:"requests_per_minute" koanf:"requests_per_minute"`

	// Labels selects series labeling: none, day-letter, or day-short.
	// day-letter reproduces the ambiguous M,T,W,T,F,S,S scheme common
	// on weekly charts; day-short is the unambiguous opt-in.
	Labels      string `yaml:"labels" koanf:"labels"`
	Instruction string `yaml:"instruction" koanf:"instruction"`
	// FewShot embeds the example set into each prompt.
	FewShot bool `yaml:"few_shot" koanf:"few_shot"`
	// ExamplesFile points at a custom YAML example set; empty selects
	// the built-in curated set.
	ExamplesFile string `yaml:"examples_file" koanf:"examples_file"`

	HistoryDB string `yaml:"history_db" koanf:"history_db"`
	ServePort int    `yaml:"serve_port" koanf:"serve_port"`
}
