package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/series"
)

var costCmd = &cobra.Command{
	Use:   "cost [values]",
	Short: "Estimate the cost of describing a series, and show spend to date",
	Long: `Without arguments, prints the total estimated spend recorded in the
history database. With a series argument, renders the prompt it would
send and estimates the cost of one call without issuing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if len(args) == 1 {
		target, err := series.Parse(args[0])
		if err != nil {
			return err
		}
		builder, err := buildPromptBuilder(cfg)
		if err != nil {
			return err
		}

		rendered := builder.Render(target)
		inputTokens := llm.EstimateTokens(rendered)
		estimate := llm.EstimateCost(cfg.Model, inputTokens, cfg.MaxTokens)

		fmt.Printf("Model:              %s\n", cfg.Model)
		fmt.Printf("Prompt tokens:      ~%d\n", inputTokens)
		fmt.Printf("Output budget:      %d tokens\n", cfg.MaxTokens)
		if estimate > 0 {
			fmt.Printf("Estimated cost:     $%.6f per call\n", estimate)
		} else {
			fmt.Printf("Estimated cost:     unknown (no pricing for %s)\n", cfg.Model)
		}
		return nil
	}

	if cfg.HistoryDB == "" {
		return fmt.Errorf("history_db is not configured")
	}
	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()
	store := history.NewStore(database)

	ctx := context.Background()
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	total, err := store.TotalCost(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded runs:      %d\n", n)
	fmt.Printf("Estimated spend:    $%.6f\n", total)
	return nil
}
