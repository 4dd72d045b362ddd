// Package cmd implements the CLI commands for server-price-alerts.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/server-price-alerts/internal/config"
)

var (
	cfgFile  string
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "server-price-alerts",
	Short: "Notify users when dedicated server prices drop",
	Long: "A service that stores per-user price thresholds for dedicated server offers, " +
		"polls the offer catalog for current prices and sends one notification per threshold crossing.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files loaded before config expansion")

	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
