package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect cardarb configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CARDARB_* prefix, e.g. CARDARB_ARBITRAGE_MIN_PROFIT)
2. Config file (config.yaml in ., ./configs or /etc/cardarb, or --config)
3. Default values

Examples:
  cardarb config show
  cardarb config show --json
  cardarb config validate --config staging.yaml`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// Never print credentials
			if cfg.Database.Password != "" {
				cfg.Database.Password = "********"
			}
			if cfg.Database.URL != "" {
				cfg.Database.URL = "********"
			}
			pricechartingKey := cfg.API.PriceCharting.APIKey != ""
			for _, key := range []*string{&cfg.API.PokemonTCG.APIKey, &cfg.API.PriceCharting.APIKey} {
				if *key != "" {
					*key = "********"
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, cfg)
			}

			fmt.Fprintln(out, "cardarb Configuration")
			fmt.Fprintln(out, "=====================")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Base currency:     %s\n", cfg.Pricing.BaseCurrency)
			fmt.Fprintf(out, "Exchange rates:    %s\n", formatFloatMap(cfg.Currency.Rates))
			fmt.Fprintln(out, "Marketplaces:")
			for _, name := range sortedKeys(cfg.Marketplaces.Sources) {
				m := cfg.Marketplaces.Sources[name]
				fmt.Fprintf(out, "  %-15s fee %.1f%%, shipping %.2f\n", name, m.FeeRate*100, m.ShippingCost)
			}
			fmt.Fprintf(out, "  %-15s fee %.1f%%, shipping %.2f\n", "(default)",
				cfg.Marketplaces.DefaultFeeRate*100, cfg.Marketplaces.DefaultShippingCost)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Min profit:        %.2f\n", cfg.Arbitrage.MinProfit)
			fmt.Fprintf(out, "Margin window:     %.1f%% - %.1f%%\n", cfg.Arbitrage.MinMarginPercent, cfg.Arbitrage.MaxMarginPercent)
			fmt.Fprintf(out, "Disallowed types:  %s\n", strings.Join(cfg.Arbitrage.DisallowedPriceTypes, ", "))
			fmt.Fprintf(out, "Reliable types:    %s\n", strings.Join(cfg.Arbitrage.ReliablePriceTypes, ", "))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Price ceiling:     %.2f\n", cfg.Validation.PriceCeiling)
			fmt.Fprintf(out, "Placeholders:      %v (±%.2f)\n", cfg.Validation.Placeholders, cfg.Validation.PlaceholderEpsilon)
			fmt.Fprintf(out, "Class ceilings:    %s (×%.1f)\n", formatFloatMap(cfg.Validation.ClassCeilings), cfg.Validation.ClassCeilingMultiplier)
			if len(cfg.Validation.ClassCeilingOverrides) > 0 {
				fmt.Fprintf(out, "Ceiling overrides: %s\n", formatFloatMap(cfg.Validation.ClassCeilingOverrides))
			}
			fmt.Fprintf(out, "Variant classes:   %v\n", cfg.Variants.EquivalenceClasses)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Scanner:           %d workers, every %s\n", cfg.Scanner.Workers, cfg.Scanner.Interval)
			fmt.Fprintf(out, "History:           enabled=%t (%s)\n", cfg.Database.Enabled, cfg.Database.Type)
			fmt.Fprintf(out, "APIs:              %s, pricecharting=%t (%d req/s, %d retries)\n",
				cfg.API.PokemonTCG.BaseURL, pricechartingKey, cfg.API.RateLimit.Requests, cfg.API.Retry.MaxAttempts)
			fmt.Fprintf(out, "Metrics:           enabled=%t (%s%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Address(), cfg.Metrics.Path)
			fmt.Fprintf(out, "Logging:           %s, %s, %s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the configuration loads and builds an engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := services.NewEngine(cfg.ToDomain(), nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
			return nil
		},
	}

	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloatMap(m map[string]float64) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, m[k]))
	}
	return strings.Join(parts, " ")
}
