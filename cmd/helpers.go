package cmd

import (
	"fmt"
	"time"

	"github.com/ziadkadry99/trendtell/internal/config"
	"github.com/ziadkadry99/trendtell/internal/describe"
	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/prompt"
)

// loadConfig loads the config without validating it. Validation runs
// after per-invocation flag overrides are overlaid, so a config that
// only becomes valid with flags applied still loads.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `trendtell init` to create a config file", err)
	}
	return cfg, nil
}

// createProviderFromConfig builds the completion provider with the
// configured retry and rate-limit decorators applied.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.MaxRetries > 0 {
		provider = llm.NewRetryProvider(provider, cfg.MaxRetries, time.Second)
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return provider, nil
}

// buildPromptBuilder assembles the prompt builder from config: the
// instruction, label mode, and the few-shot example set (custom file,
// built-in set, or none).
func buildPromptBuilder(cfg *config.Config) (prompt.Builder, error) {
	b := prompt.Builder{
		Instruction: cfg.Instruction,
		Labels:      cfg.LabelMode(),
	}

	if !cfg.FewShot {
		return b, nil
	}
	if cfg.ExamplesFile != "" {
		examples, err := prompt.LoadExamples(cfg.ExamplesFile)
		if err != nil {
			return prompt.Builder{}, err
		}
		b.Examples = examples
		return b, nil
	}
	b.Examples = prompt.DefaultExamples()
	return b, nil
}

// createDescriberFromConfig wires the full describe pipeline. The
// config is validated here, after any flag overrides have been applied.
func createDescriberFromConfig(cfg *config.Config) (*describe.Describer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	builder, err := buildPromptBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return describe.New(builder, provider, describe.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}), nil
}
