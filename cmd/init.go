package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/trendtell/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize trendtell configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure trendtell and generates a .trendtell.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
