package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
	serveNoRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts an HTTP server exposing POST /api/describe for generating trend
descriptions and GET /api/history for browsing recorded runs.`,
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
		if !serveNoRecord && cfg.HistoryDB != "" {
			database, err := db.Open(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("opening history database: %w", err)
			}
			defer database.Close()
			store = history.NewStore(database)
			describer = describer.WithRecorder(store)
		}

		port := cfg.ServePort
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: serveAllowAll,
		}, describer, store)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "trendtell server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)
		if store != nil {
			fmt.Fprintf(os.Stderr, "  History: %s\n", cfg.HistoryDB)
		} else {
			fmt.Fprintln(os.Stderr, "  History: disabled")
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins")
	serveCmd.Flags().BoolVar(&serveNoRecord, "no-record", false, "do not record runs in the history database")
	rootCmd.AddCommand(serveCmd)
}
