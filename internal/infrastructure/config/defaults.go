package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// registerDefaults seeds viper with the built-in pricing configuration so
// that explicit zeros in a config file or the environment are preserved.
func registerDefaults(v *viper.Viper) {
	settings := pricing.DefaultSettings()
	thresholds := trading.DefaultThresholds()

	v.SetDefault("pricing.base_currency", string(settings.Currency.Base))
	rates := make(map[string]interface{}, len(settings.Currency.Rates))
	for currency, rate := range settings.Currency.Rates {
		rates[strings.ToLower(string(currency))] = rate
	}
	v.SetDefault("currency.rates", rates)

	sources := make(map[string]interface{}, len(settings.Fees.Terms))
	for source, terms := range settings.Fees.Terms {
		sources[string(source)] = map[string]interface{}{
			"fee_rate":      terms.FeeRate,
			"shipping_cost": terms.ShippingCost,
		}
	}
	v.SetDefault("marketplaces.sources", sources)
	v.SetDefault("marketplaces.default_fee_rate", settings.Fees.Defaults.FeeRate)
	v.SetDefault("marketplaces.default_shipping_cost", settings.Fees.Defaults.ShippingCost)

	v.SetDefault("arbitrage.min_profit", thresholds.MinProfit)
	v.SetDefault("arbitrage.min_margin_percent", thresholds.MinMarginPercent)
	v.SetDefault("arbitrage.max_margin_percent", thresholds.MaxMarginPercent)
	v.SetDefault("arbitrage.sell_price_ceiling", thresholds.SellPriceCeiling)
	v.SetDefault("arbitrage.suspicious_low_buy", thresholds.SuspiciousLowBuy)
	v.SetDefault("arbitrage.suspicious_high_sell", thresholds.SuspiciousHighSell)
	v.SetDefault("arbitrage.disallowed_price_types", priceTypeNames(thresholds.DisallowedPriceTypes))
	v.SetDefault("arbitrage.reliable_price_types", priceTypeNames(thresholds.ReliablePriceTypes))

	validation := settings.Validation
	v.SetDefault("validation.price_ceiling", validation.PriceCeiling)
	v.SetDefault("validation.placeholders", validation.Placeholders)
	v.SetDefault("validation.placeholder_epsilon", validation.PlaceholderEpsilon)
	v.SetDefault("validation.class_ceiling_multiplier", validation.ClassCeilingMultiplier)
	v.SetDefault("validation.class_ceilings", classTable(validation.ClassCeilings))

	classes := make([][]string, 0, len(settings.Comparability.EquivalenceClasses))
	for _, class := range settings.Comparability.EquivalenceClasses {
		names := make([]string, len(class))
		for i, variant := range class {
			names[i] = string(variant)
		}
		classes = append(classes, names)
	}
	v.SetDefault("variants.equivalence_classes", classes)

	v.SetDefault("scanner.workers", 4)
	v.SetDefault("scanner.interval", 5*time.Minute)

	v.SetDefault("api.pokemontcg.base_url", "https://api.pokemontcg.io/v2")
	v.SetDefault("api.pricecharting.base_url", "https://www.pricecharting.com/api")
	v.SetDefault("api.rate_limit.requests", 2)
	v.SetDefault("api.rate_limit.burst", 2)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry.max_attempts", 3)
	v.SetDefault("api.retry.backoff_base", time.Second)
	v.SetDefault("api.circuit_breaker.max_failures", 5)
	v.SetDefault("api.circuit_breaker.cooldown", time.Minute)
}

// SetDefaults sets default values for configuration fields where a zero
// value is never meaningful
func SetDefaults(cfg *Config) {
	// Scanner defaults
	if cfg.Scanner.Workers == 0 {
		cfg.Scanner.Workers = 4
	}
	if cfg.Scanner.Interval == 0 {
		cfg.Scanner.Interval = 5 * time.Minute
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "cardarb.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "cardarb"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "cardarb"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.PollInterval == 0 {
		cfg.Metrics.PollInterval = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

func priceTypeNames(types []pricing.PriceType) []string {
	names := make([]string, len(types))
	for i, pt := range types {
		names[i] = string(pt)
	}
	return names
}

func classTable(table map[pricing.RarityClass]float64) map[string]interface{} {
	out := make(map[string]interface{}, len(table))
	for class, ceiling := range table {
		out[string(class)] = ceiling
	}
	return out
}
