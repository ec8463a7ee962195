package trading_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

func point(
	t *testing.T,
	source pricing.Source,
	variant pricing.Variant,
	priceType pricing.PriceType,
	price, fee, shipping float64,
) *pricing.PricePoint {
	t.Helper()
	p, err := pricing.NewPricePoint(source, variant, priceType, pricing.ConditionNearMint, price,
		pricing.MarketplaceTerms{FeeRate: fee, ShippingCost: shipping})
	require.NoError(t, err)
	return p
}

func newCalculator() *trading.ArbitrageCalculator {
	return trading.NewArbitrageCalculator(nil, nil, trading.DefaultThresholds(), nil)
}

func TestFindOpportunities_EndToEnd(t *testing.T) {
	// Arrange
	normalizer := pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)
	a := point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 20.00, 0.15, 1.00)
	b := point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend,
		normalizer.Normalize(30.00, pricing.CurrencyEUR), 0.05, 1.00)

	// Act
	opps := newCalculator().FindOpportunities([]*pricing.PricePoint{a, b})

	// Assert
	require.Len(t, opps, 1)
	opp := opps[0]
	assert.Equal(t, pricing.SourceTCGPlayer, opp.BuyPoint().Source())
	assert.Equal(t, pricing.SourceCardmarket, opp.SellPoint().Source())
	assert.InDelta(t, 32.70, opp.SellPrice(), 1e-9)
	assert.InDelta(t, 21.00, opp.BuyCost(), 1e-9)
	assert.InDelta(t, 31.065, opp.SellNet(), 1e-9)
	assert.InDelta(t, 10.065, opp.Profit(), 1e-9)
	assert.InDelta(t, 47.93, opp.ProfitMargin(), 0.01)
	assert.Equal(t, "holofoil to holofoil", opp.VariantInfo())
}

func TestFindOpportunities_NeverPairsSameSource(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMid, 2, 0, 0),
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 20, 0, 0),
	}

	assert.Empty(t, newCalculator().FindOpportunities(points))
}

func TestFindOpportunities_VariantGating(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 5, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantNormal, pricing.PriceTypeTrend, 50, 0, 0),
	}

	assert.Empty(t, newCalculator().FindOpportunities(points))
}

func TestFindOpportunities_NormalAndStandardAreComparable(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 10, 0, 0),
	}

	opps := newCalculator().FindOpportunities(points)

	require.Len(t, opps, 1)
	assert.Equal(t, "normal to standard", opps[0].VariantInfo())
}

func TestFindOpportunities_DisallowedPriceType(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 5, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeHigh, 50, 0, 0),
	}
	calc := newCalculator()

	assert.Empty(t, calc.FindOpportunities(points))

	_, decision := calc.Evaluate(points[0], points[1])
	assert.Equal(t, trading.DecisionDisallowedPriceType, decision)
}

func TestFindOpportunities_UnreliablePriceTypeSkipped(t *testing.T) {
	buy := point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeLow, 5, 0, 0)
	sell := point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 8, 0, 0)

	_, decision := newCalculator().Evaluate(buy, sell)
	assert.Equal(t, trading.DecisionUnreliablePriceType, decision)

	permissive := trading.DefaultThresholds()
	permissive.ReliablePriceTypes = nil
	opp, decision := trading.NewArbitrageCalculator(nil, nil, permissive, nil).Evaluate(buy, sell)
	assert.Equal(t, trading.DecisionAccepted, decision)
	assert.NotNil(t, opp)
}

func TestFindOpportunities_PlaceholderRejected(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 20, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 999.99, 0, 0),
	}

	assert.Empty(t, newCalculator().FindOpportunities(points))
}

func TestFindOpportunities_ThresholdEnforcement(t *testing.T) {
	calc := newCalculator()

	// 5% margin, $0.50 profit
	excluded := calc.FindOpportunities([]*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 10.00, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantNormal, pricing.PriceTypeTrend, 10.50, 0, 0),
	})
	assert.Empty(t, excluded)

	// 40% margin, $2.00 profit
	included := calc.FindOpportunities([]*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5.00, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantNormal, pricing.PriceTypeTrend, 7.00, 0, 0),
	})
	require.Len(t, included, 1)
	assert.InDelta(t, 2.00, included[0].Profit(), 1e-9)
	assert.InDelta(t, 40.0, included[0].ProfitMargin(), 1e-9)
}

func TestFindOpportunities_BothThresholdsRequired(t *testing.T) {
	calc := newCalculator()

	// 50% margin but only $0.50 profit
	_, decision := calc.Evaluate(
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 1.00, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantNormal, pricing.PriceTypeTrend, 1.50, 0, 0),
	)
	assert.Equal(t, trading.DecisionBelowThreshold, decision)

	// $5 profit but 5% margin
	_, decision = calc.Evaluate(
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 100, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantNormal, pricing.PriceTypeTrend, 105, 0, 0),
	)
	assert.Equal(t, trading.DecisionBelowThreshold, decision)
}

func TestFindOpportunities_Ranking(t *testing.T) {
	// three sell-side sources against one buy: margins 12%, 45%, 30%
	buy := point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 100, 0, 0)
	points := []*pricing.PricePoint{
		buy,
		point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 112, 0, 0),
		point(t, pricing.SourcePriceCharting, pricing.VariantHolofoil, pricing.PriceTypeLoose, 145, 0, 0),
		point(t, "ebay", pricing.VariantHolofoil, pricing.PriceTypeMarket, 130, 0, 0),
	}

	opps := newCalculator().FindOpportunities(points)

	var fromBuy []float64
	for _, o := range opps {
		if o.BuyPoint() == buy {
			fromBuy = append(fromBuy, o.ProfitMargin())
		}
	}
	require.Len(t, fromBuy, 3)
	assert.InDelta(t, 45.0, fromBuy[0], 1e-9)
	assert.InDelta(t, 30.0, fromBuy[1], 1e-9)
	assert.InDelta(t, 12.0, fromBuy[2], 1e-9)

	for i := 1; i < len(opps); i++ {
		assert.GreaterOrEqual(t, opps[i-1].ProfitMargin(), opps[i].ProfitMargin())
	}
}

func TestFindOpportunities_Idempotent(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 8, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeAverage, 8, 0, 0),
		point(t, pricing.SourcePriceCharting, pricing.VariantNormal, pricing.PriceTypeLoose, 8, 0, 0),
	}
	reversed := []*pricing.PricePoint{points[3], points[2], points[1], points[0]}
	calc := newCalculator()

	first := calc.FindOpportunities(points)
	second := calc.FindOpportunities(points)
	third := calc.FindOpportunities(reversed)

	require.NotEmpty(t, first)
	require.Equal(t, len(first), len(second))
	require.Equal(t, len(first), len(third))
	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
		assert.Equal(t, first[i].String(), third[i].String())
	}
}

func TestFindOpportunities_Plausibility(t *testing.T) {
	calc := newCalculator()

	_, decision := calc.Evaluate(
		point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 0.20, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 600, 0, 0),
	)
	assert.Equal(t, trading.DecisionSuspiciousPair, decision)

	_, decision = calc.Evaluate(
		point(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 2, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 20, 0, 0),
	)
	assert.Equal(t, trading.DecisionExcessiveMargin, decision)
}

func TestFindOpportunities_TooFewPoints(t *testing.T) {
	calc := newCalculator()

	assert.NotNil(t, calc.FindOpportunities(nil))
	assert.Empty(t, calc.FindOpportunities(nil))
	assert.Empty(t, calc.FindOpportunities([]*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0),
		nil,
	}))
}

func TestFindOpportunitiesForItem_UsesRarity(t *testing.T) {
	points := []*pricing.PricePoint{
		point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0),
		point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 8, 0, 0),
	}
	calc := newCalculator()

	assert.Len(t, calc.FindOpportunitiesForItem(points, &pricing.ItemContext{Rarity: "Rare"}), 1)
	assert.Empty(t, calc.FindOpportunitiesForItem(points, &pricing.ItemContext{Rarity: "Common"}))
}

func TestNewScanRecord_SummarizesBestOpportunity(t *testing.T) {
	buy := point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0)
	sell := point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 7, 0, 0)
	opp, err := trading.NewArbitrageOpportunity(buy, sell)
	require.NoError(t, err)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	record, err := trading.NewScanRecord("scan-1", "Pikachu", "Base", "USD", 2, []*trading.ArbitrageOpportunity{opp}, at)

	require.NoError(t, err)
	assert.True(t, record.HasArbitrage())
	assert.Equal(t, "tcgplayer/normal/market", record.BestBuy())
	assert.Equal(t, "cardmarket/standard/trend", record.BestSell())
	assert.InDelta(t, 40.0, record.BestMargin(), 1e-9)
	assert.Equal(t, at, record.ScannedAt())

	_, err = trading.NewScanRecord("", "Pikachu", "", "USD", 0, nil, at)
	assert.Error(t, err)
}

func TestEvaluateForItem_AppliesRarityValidation(t *testing.T) {
	buy := point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 5, 0, 0)
	sell := point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 8, 0, 0)
	calc := newCalculator()

	opp, decision := calc.Evaluate(buy, sell)
	assert.Equal(t, trading.DecisionAccepted, decision)
	assert.NotNil(t, opp)

	opp, decision = calc.EvaluateForItem(buy, sell, &pricing.ItemContext{Rarity: "Common"})
	assert.Equal(t, trading.DecisionInvalidPoint, decision)
	assert.Nil(t, opp)
}

func TestFindOpportunitiesForItem_SellCeilingFollowsClassOverride(t *testing.T) {
	settings := pricing.DefaultValidationSettings()
	settings.ClassCeilingOverrides = map[pricing.RarityClass]float64{pricing.RaritySecretRare: 2000}
	validator := pricing.NewPriceValidator(settings, nil)
	secret := &pricing.ItemContext{Rarity: "Rare Secret"}
	buy := point(t, pricing.SourceTCGPlayer, pricing.VariantNormal, pricing.PriceTypeMarket, 1200, 0, 0)
	sell := point(t, pricing.SourceCardmarket, pricing.VariantStandard, pricing.PriceTypeTrend, 1400, 0, 0)

	calc := trading.NewArbitrageCalculator(validator, nil, trading.DefaultThresholds(), nil)
	opps := calc.FindOpportunitiesForItem([]*pricing.PricePoint{buy, sell}, secret)
	require.Len(t, opps, 1)
	assert.Equal(t, 1400.0, opps[0].SellPrice())

	thresholds := trading.DefaultThresholds()
	thresholds.SellPriceCeiling = 1000
	capped := trading.NewArbitrageCalculator(validator, nil, thresholds, nil)
	_, decision := capped.EvaluateForItem(buy, sell, secret)
	assert.Equal(t, trading.DecisionImplausibleSell, decision)
}
