package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

func mustPoint(t *testing.T, price float64) *pricing.PricePoint {
	t.Helper()
	p, err := pricing.NewPricePoint(
		pricing.SourceTCGPlayer,
		pricing.VariantHolofoil,
		pricing.PriceTypeMarket,
		pricing.ConditionNearMint,
		price,
		pricing.MarketplaceTerms{FeeRate: 0.15, ShippingCost: 1},
	)
	require.NoError(t, err)
	return p
}

func TestPriceValidator_RejectsPlaceholders(t *testing.T) {
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), nil)

	for _, price := range []float64{999.99, 9999.99, 0.01, 999.985} {
		result := validator.CheckPrice(price, nil)
		assert.False(t, result.Valid, "price %v", price)
		if price < 1000 {
			assert.Equal(t, pricing.ReasonPlaceholder, result.Reason, "price %v", price)
		}
	}

	assert.False(t, validator.IsValid(mustPoint(t, 999.99)))
}

func TestPriceValidator_BasicRules(t *testing.T) {
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), nil)

	tests := []struct {
		name   string
		price  float64
		reason pricing.RejectionReason
	}{
		{"ordinary price", 12.50, pricing.ReasonNone},
		{"high but plausible", 750, pricing.ReasonNone},
		{"above ceiling", 1000.01, pricing.ReasonAboveCeiling},
		{"zero", 0, pricing.ReasonNonPositive},
		{"negative", -5, pricing.ReasonNonPositive},
		{"nan", math.NaN(), pricing.ReasonMalformed},
		{"inf", math.Inf(1), pricing.ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.CheckPrice(tt.price, nil)
			assert.Equal(t, tt.reason == pricing.ReasonNone, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestPriceValidator_CeilingIsInclusive(t *testing.T) {
	settings := pricing.DefaultValidationSettings()
	settings.Placeholders = nil
	validator := pricing.NewPriceValidator(settings, nil)

	assert.True(t, validator.IsValidPrice(1000, nil))
	assert.False(t, validator.IsValidPrice(1000.5, nil))
}

func TestPriceValidator_NilPointIsMalformed(t *testing.T) {
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), nil)

	result := validator.Check(nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, pricing.ReasonMalformed, result.Reason)
}

func TestPriceValidator_RarityCeilings(t *testing.T) {
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), nil)

	common := &pricing.ItemContext{Rarity: "Common"}
	assert.True(t, validator.IsValidPrice(6, common))
	assert.False(t, validator.IsValidPrice(6.5, common))
	assert.Equal(t, pricing.ReasonAboveClassCeiling, validator.CheckPrice(6.5, common).Reason)

	holo := &pricing.ItemContext{Rarity: "Rare Holo"}
	assert.True(t, validator.IsValidPrice(150, holo))
	assert.False(t, validator.IsValidPrice(151, holo))

	// without context only the absolute ceiling applies
	assert.True(t, validator.IsValidPrice(151, nil))
}

func TestPriceValidator_ClassOverrideLiftsAbsoluteCeiling(t *testing.T) {
	settings := pricing.DefaultValidationSettings()
	settings.ClassCeilingOverrides = map[pricing.RarityClass]float64{pricing.RaritySecretRare: 2000}
	validator := pricing.NewPriceValidator(settings, nil)

	secret := &pricing.ItemContext{Rarity: "Rare Secret"}
	assert.True(t, validator.IsValidPrice(1200, secret))
	assert.False(t, validator.IsValidPrice(1200, &pricing.ItemContext{Rarity: "Promo"}))
	assert.False(t, validator.IsValidPrice(1200, nil))
}

func TestPriceValidator_LogsRejections(t *testing.T) {
	logger := &recordingLogger{}
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), logger)

	validator.IsValid(mustPoint(t, 999.99))

	require.Equal(t, 1, logger.count(pricing.LevelDebug))
	assert.Equal(t, "placeholder", logger.entries[0].metadata["reason"])
}

func TestClassifyRarity(t *testing.T) {
	tests := map[string]pricing.RarityClass{
		"Common":                    pricing.RarityCommon,
		"Uncommon":                  pricing.RarityUncommon,
		"Rare":                      pricing.RarityRare,
		"Rare Holo":                 pricing.RarityHolofoil,
		"Rare Holo GX":              pricing.RarityUltraRare,
		"Rare Ultra":                pricing.RarityUltraRare,
		"Rare Secret":               pricing.RaritySecretRare,
		"Hyper Rare":                pricing.RaritySecretRare,
		"Rare Rainbow":              pricing.RaritySecretRare,
		"Promo":                     pricing.RarityPromo,
		"Black Star Promo":          pricing.RarityPromo,
		"":                          pricing.RarityDefault,
		"Amazing":                   pricing.RarityDefault,
		"Special Illustration Rare": pricing.RarityRare,
	}

	for label, want := range tests {
		assert.Equal(t, want, pricing.ClassifyRarity(label), label)
	}
}

func TestPriceValidator_MatchesPlaceholdersOnQuotedAmount(t *testing.T) {
	validator := pricing.NewPriceValidator(pricing.DefaultValidationSettings(), nil)

	// 999.99 USD normalized into EUR no longer looks like a placeholder.
	quotedPlaceholder := mustPoint(t, 919.99).WithOriginalQuote(999.99, pricing.CurrencyUSD)
	result := validator.Check(quotedPlaceholder, nil)
	assert.False(t, result.Valid)
	assert.Equal(t, pricing.ReasonPlaceholder, result.Reason)

	// A real EUR quote that lands on 999.99 after conversion is kept.
	converted := mustPoint(t, 999.99).WithOriginalQuote(917.42, pricing.CurrencyEUR)
	assert.True(t, validator.IsValid(converted))
}

func TestPriceValidator_CeilingFor(t *testing.T) {
	settings := pricing.DefaultValidationSettings()
	settings.ClassCeilingOverrides = map[pricing.RarityClass]float64{pricing.RaritySecretRare: 2000}
	validator := pricing.NewPriceValidator(settings, nil)

	assert.Equal(t, 1000.0, validator.CeilingFor(nil))
	assert.Equal(t, 1000.0, validator.CeilingFor(&pricing.ItemContext{Rarity: "Rare Holo"}))
	assert.Equal(t, 2000.0, validator.CeilingFor(&pricing.ItemContext{Rarity: "Rare Secret"}))
}
