package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
	mcpserver "github.com/ziadkadry99/trendtell/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing a
describe_trend tool so AI agents can generate trend descriptions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		describer, err := createDescriberFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating describer: %w", err)
		}

		var store *history.Store
		if cfg.HistoryDB != "" {
			database, err := db.Open(cfg.HistoryDB)
			if err != nil {
				// The describe tool still works without history.
				fmt.Fprintf(os.Stderr, "Warning: could not open history database at %s: %v\n", cfg.HistoryDB, err)
			} else {
				defer database.Close()
				store = history.NewStore(database)
				describer = describer.WithRecorder(store)
			}
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "trendtell MCP server started on stdio (provider=%s, model=%s)\n", cfg.Provider, cfg.Model)

		srv := mcpserver.NewServer(describer, store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
