package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

func TestNormalizeVariantName(t *testing.T) {
	tests := map[string]pricing.Variant{
		"normal":               pricing.VariantNormal,
		"holofoil":             pricing.VariantHolofoil,
		"reverseHolofoil":      pricing.VariantReverseHolofoil,
		"Reverse Holo":         pricing.VariantReverseHolofoil,
		"1stEditionHolofoil":   pricing.VariantFirstEditionHolo,
		"1st Edition Holofoil": pricing.VariantFirstEditionHolo,
		"1stEdition":           pricing.VariantFirstEdition,
		"unlimitedHolofoil":    pricing.VariantHolofoil,
		"unlimited":            pricing.VariantUnlimited,
		"standard":             pricing.VariantNormal,
		"something else":       pricing.VariantNormal,
		"":                     pricing.VariantNormal,
	}

	for label, want := range tests {
		assert.Equal(t, want, pricing.NormalizeVariantName(label), label)
	}
}

func TestParseVariant_FallsBackToNormal(t *testing.T) {
	assert.Equal(t, pricing.VariantStandard, pricing.ParseVariant("Standard"))
	assert.Equal(t, pricing.VariantReverseHolofoil, pricing.ParseVariant("REVERSEHOLOFOIL"))
	assert.Equal(t, pricing.VariantNormal, pricing.ParseVariant("shadowless"))
}

func TestDetectVariantFromProductName(t *testing.T) {
	assert.Equal(t, pricing.VariantReverseHolofoil, pricing.DetectVariantFromProductName("Pikachu [Reverse Holo] #25"))
	assert.Equal(t, pricing.VariantHolofoil, pricing.DetectVariantFromProductName("Charizard Holo #4"))
	assert.Equal(t, pricing.VariantFirstEdition, pricing.DetectVariantFromProductName("Machamp 1st Edition"))
	assert.Equal(t, pricing.VariantNormal, pricing.DetectVariantFromProductName("Pikachu #58"))
}

func TestParsePriceType(t *testing.T) {
	assert.Equal(t, pricing.PriceTypeDirectLow, pricing.ParsePriceType("directLow"))
	assert.Equal(t, pricing.PriceTypeLoose, pricing.ParsePriceType("loose-price"))
	assert.Equal(t, pricing.PriceTypeUnknown, pricing.ParsePriceType("graded-price"))
	assert.Equal(t,
		[]pricing.PriceType{pricing.PriceTypeMarket, pricing.PriceTypeHigh},
		pricing.ParsePriceTypes([]string{"market", "MARKET", "high"}))
}

func TestSetMapping_Lookup(t *testing.T) {
	mapping := pricing.DefaultSetMapping()

	ids, ok := mapping.Lookup("  evolving skies ")
	assert.True(t, ok)
	assert.Equal(t, "swsh7", ids.TCGPlayerID)
	assert.Equal(t, "50472", ids.PriceChartingID)

	_, ok = mapping.Lookup("Base Set 2")
	assert.False(t, ok)
}

func TestLookupVariant(t *testing.T) {
	v, ok := pricing.LookupVariant(" ReverseHolofoil ")
	assert.True(t, ok)
	assert.Equal(t, pricing.VariantReverseHolofoil, v)

	_, ok = pricing.LookupVariant("holo")
	assert.False(t, ok)
	assert.Equal(t, pricing.VariantNormal, pricing.ParseVariant("holo"))
}
