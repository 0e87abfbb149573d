package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trendtell",
	Short: "Natural-language trend descriptions for numeric series",
	Long: `Trendtell turns short numeric time series into one-sentence
natural-language trend descriptions using hosted LLM completion
endpoints. The output is intended as accessible alternative text
for chart visualizations.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".trendtell.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
