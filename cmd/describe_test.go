package cmd

import (
	"path/filepath"
	"testing"
)

func TestConfigValidatesAfterFlagOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".trendtell.yml")
	// Valid only once --model supplies a value.
	writeFile(t, path, "provider: openai\nmodel: \"\"\n")

	oldCfgFile := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = oldCfgFile })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig should not validate: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure before flag overlay")
	}

	if err := describeCmd.Flags().Set("model", "gpt-3.5-turbo-instruct"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { describeCmd.Flags().Set("model", "") })

	applyDescribeFlags(describeCmd, cfg)
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should be valid after flag overlay: %v", err)
	}
	if cfg.Model != "gpt-3.5-turbo-instruct" {
		t.Errorf("model = %q, want flag override", cfg.Model)
	}
}
