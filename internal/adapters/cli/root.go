package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardarb",
		Short: "cardarb - Trading card price normalization and arbitrage detection",
		Long: `cardarb reads card price payloads from TCGPlayer, Cardmarket and
PriceCharting, normalizes them into one currency, drops implausible quotes and
ranks cross-marketplace arbitrage opportunities.

Examples:
  cardarb scan charizard.json
  cardarb scan - --json < charizard.json
  cardarb fetch swsh7-215 --save umbreon.json
  cardarb extract cardmarket cardmarket.json
  cardarb validate --price 999.99
  cardarb batch ./payloads --workers 8
  cardarb watch ./payloads --interval 10m
  cardarb history --card Charizard`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CARDARB_CONFIG"),
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewFetchCommand())
	rootCmd.AddCommand(NewExtractCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewBatchCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
