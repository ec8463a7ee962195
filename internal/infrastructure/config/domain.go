package config

import (
	"strings"

	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// ToDomain converts the loaded configuration into engine settings. The
// result still goes through NewEngine's own validation.
func (c *Config) ToDomain() services.EngineSettings {
	rates := make(map[pricing.Currency]float64, len(c.Currency.Rates))
	for code, rate := range c.Currency.Rates {
		rates[pricing.ParseCurrency(code)] = rate
	}

	terms := make(map[pricing.Source]pricing.MarketplaceTerms, len(c.Marketplaces.Sources))
	for name, mc := range c.Marketplaces.Sources {
		source, ok := pricing.ParseSource(name)
		if !ok {
			continue
		}
		terms[source] = pricing.MarketplaceTerms{FeeRate: mc.FeeRate, ShippingCost: mc.ShippingCost}
	}

	classes := make([][]pricing.Variant, 0, len(c.Variants.EquivalenceClasses))
	for _, names := range c.Variants.EquivalenceClasses {
		class := make([]pricing.Variant, 0, len(names))
		for _, name := range names {
			if variant, ok := pricing.LookupVariant(name); ok {
				class = append(class, variant)
			}
		}
		if len(class) > 1 {
			classes = append(classes, class)
		}
	}

	settings := services.EngineSettings{
		Pricing: pricing.Settings{
			Currency: pricing.CurrencySettings{
				Base:  pricing.ParseCurrency(c.Pricing.BaseCurrency),
				Rates: rates,
			},
			Fees: pricing.FeeSettings{
				Terms: terms,
				Defaults: pricing.MarketplaceTerms{
					FeeRate:      c.Marketplaces.DefaultFeeRate,
					ShippingCost: c.Marketplaces.DefaultShippingCost,
				},
			},
			Validation: pricing.ValidationSettings{
				PriceCeiling:           c.Validation.PriceCeiling,
				Placeholders:           append([]float64(nil), c.Validation.Placeholders...),
				PlaceholderEpsilon:     c.Validation.PlaceholderEpsilon,
				ClassCeilingMultiplier: c.Validation.ClassCeilingMultiplier,
				ClassCeilings:          classTableToDomain(c.Validation.ClassCeilings),
				ClassCeilingOverrides:  classTableToDomain(c.Validation.ClassCeilingOverrides),
			},
			Comparability: pricing.ComparabilitySettings{EquivalenceClasses: classes},
		},
		Thresholds: trading.Thresholds{
			MinProfit:            c.Arbitrage.MinProfit,
			MinMarginPercent:     c.Arbitrage.MinMarginPercent,
			MaxMarginPercent:     c.Arbitrage.MaxMarginPercent,
			SellPriceCeiling:     c.Arbitrage.SellPriceCeiling,
			SuspiciousLowBuy:     c.Arbitrage.SuspiciousLowBuy,
			SuspiciousHighSell:   c.Arbitrage.SuspiciousHighSell,
			DisallowedPriceTypes: pricing.ParsePriceTypes(c.Arbitrage.DisallowedPriceTypes),
			ReliablePriceTypes:   pricing.ParsePriceTypes(c.Arbitrage.ReliablePriceTypes),
		},
	}

	if len(c.Sets) > 0 {
		mapping := make(map[string]pricing.SetIDs, len(c.Sets))
		for name, set := range c.Sets {
			mapping[strings.TrimSpace(name)] = pricing.SetIDs{
				TCGPlayerID:     set.TCGPlayerID,
				PriceChartingID: set.PriceChartingID,
			}
		}
		settings.SetMapping = mapping
	}

	return settings
}

func classTableToDomain(table map[string]float64) map[pricing.RarityClass]float64 {
	out := make(map[pricing.RarityClass]float64, len(table))
	for name, ceiling := range table {
		if class, ok := pricing.ParseRarityClass(name); ok {
			out[class] = ceiling
		}
	}
	return out
}
