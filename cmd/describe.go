package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/config"
	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/series"
)

var describeCmd = &cobra.Command{
	Use:   "describe [values]",
	Short: "Generate a one-sentence trend description for a numeric series",
	Long: `Builds a prompt for the given comma-separated series, issues one
completion request, and prints the first candidate's text.

Example:
  trendtell describe "132, 329, 583, 743, 966, 1123, 1298"`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().String("labels", "", "series labeling: none, day-letter, or day-short (overrides config)")
	describeCmd.Flags().String("model", "", "model identifier (overrides config)")
	describeCmd.Flags().Float64("temperature", -1, "sampling temperature; 0 is deterministic (overrides config)")
	describeCmd.Flags().Int("max-tokens", 0, "maximum output tokens (overrides config)")
	describeCmd.Flags().String("instruction", "", "task instruction (overrides config)")
	describeCmd.Flags().String("examples", "", "YAML file of few-shot example pairs (overrides config)")
	describeCmd.Flags().Bool("zero-shot", false, "omit few-shot examples from the prompt")
	describeCmd.Flags().Bool("dry-run", false, "print the rendered prompt without calling the provider")
	describeCmd.Flags().Bool("show-finish-reason", false, "print the finish reason after the description")
	describeCmd.Flags().Bool("no-record", false, "skip recording this run in the history database")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyDescribeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	target, err := series.Parse(args[0])
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		builder, err := buildPromptBuilder(cfg)
		if err != nil {
			return err
		}
		fmt.Println(builder.Render(target))
		return nil
	}

	describer, err := createDescriberFromConfig(cfg)
	if err != nil {
		return err
	}

	noRecord, _ := cmd.Flags().GetBool("no-record")
	if !noRecord && cfg.HistoryDB != "" {
		database, err := db.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()
		describer = describer.WithRecorder(history.NewStore(database))
	}

	res, err := describer.Describe(context.Background(), target)
	if err != nil {
		// A recording failure still carries a usable description.
		if res == nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Println(res.Description)

	if show, _ := cmd.Flags().GetBool("show-finish-reason"); show {
		fmt.Printf("(finish reason: %s)\n", res.FinishReason)
	}
	if verbose {
		fmt.Printf("model=%s tokens=%d/%d cost=$%.6f elapsed=%s\n",
			res.Model, res.InputTokens, res.OutputTokens, res.CostUSD, res.Elapsed.Round(time.Millisecond))
		if res.FinishReason == "length" {
			fmt.Println("note: output was truncated at the token limit; consider raising max_tokens")
		}
	}
	return nil
}

// applyDescribeFlags overlays per-invocation flag overrides onto cfg.
func applyDescribeFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("labels"); v != "" {
		cfg.Labels = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetFloat64("temperature"); v >= 0 {
		cfg.Temperature = v
	}
	if v, _ := cmd.Flags().GetInt("max-tokens"); v > 0 {
		cfg.MaxTokens = v
	}
	if v, _ := cmd.Flags().GetString("instruction"); v != "" {
		cfg.Instruction = v
	}
	if v, _ := cmd.Flags().GetString("examples"); v != "" {
		cfg.ExamplesFile = v
	}
	if v, _ := cmd.Flags().GetBool("zero-shot"); v {
		cfg.FewShot = false
	}
}
