package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .trendtell.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to trendtell! Let's configure trend descriptions.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select completion provider",
		Items: []string{"openai", "openrouter", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.Provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.Model = model

	// 3. Series labeling.
	labelPrompt := promptui.Select{
		Label: "Series labeling",
		Items: []string{
			"none       — plain comma-separated numbers",
			"day-letter — M,T,W,T,F,S,S prefixes (ambiguous Tue/Thu, Sat/Sun)",
			"day-short  — Mon..Sun prefixes (unambiguous)",
		},
	}
	labelIdx, _, err := labelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("label selection: %w", err)
	}
	cfg.Labels = []string{"none", "day-letter", "day-short"}[labelIdx]

	// 4. Few-shot examples.
	fewShotPrompt := promptui.Select{
		Label: "Include few-shot examples in each prompt",
		Items: []string{"yes (built-in curated set)", "no (zero-shot)"},
	}
	fewShotIdx, _, err := fewShotPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("few-shot selection: %w", err)
	}
	cfg.FewShot = fewShotIdx == 0

	// 5. Output budget.
	tokensPrompt := promptui.Prompt{
		Label:   "Maximum output tokens",
		Default: strconv.Itoa(cfg.MaxTokens),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	tokensStr, err := tokensPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("max tokens: %w", err)
	}
	cfg.MaxTokens, _ = strconv.Atoi(tokensStr)

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running trendtell describe.\n", envVar)
		}
	}

	// Save to .trendtell.yml.
	configPath := ".trendtell.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
