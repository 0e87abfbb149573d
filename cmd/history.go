package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List or inspect recorded description runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("model", "", "filter by model identifier")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		run, err := store.GetByID(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(run)
		}
		printRunDetail(run)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	model, _ := cmd.Flags().GetString("model")
	runs, err := store.List(ctx, history.QueryFilter{Limit: limit, Model: model})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run `trendtell describe` first.")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Series)
		fmt.Printf("   %s\n", run.Description)
	}
	return nil
}

func printRunDetail(run *history.Run) {
	fmt.Printf("ID:           %s\n", run.ID)
	fmt.Printf("Created:      %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Series:       %s (labels: %s)\n", run.Series, run.Labels)
	fmt.Printf("Description:  %s\n", run.Description)
	fmt.Printf("Provider:     %s (model %s)\n", run.Provider, run.Model)
	fmt.Printf("Finish:       %s\n", run.FinishReason)
	fmt.Printf("Tokens:       %d in / %d out\n", run.InputTokens, run.OutputTokens)
	fmt.Printf("Cost:         $%.6f\n", run.CostUSD)
	fmt.Printf("Elapsed:      %dms\n", run.ElapsedMS)
	fmt.Printf("Stats:        direction=%s min=%g max=%g mean=%g\n",
		run.Stats.Direction, run.Stats.Min, run.Stats.Max, run.Stats.Mean)
	fmt.Println()
	fmt.Println("Prompt:")
	fmt.Println(run.Prompt)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
