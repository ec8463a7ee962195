package helpers

import (
	"testing"

	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// CharizardPayload is a card with quotes on all three marketplaces, including
// a placeholder mid price on TCGPlayer.
const CharizardPayload = `{
	"name": "Charizard", "number": "4", "rarity": "Rare Holo",
	"set": {"name": "Evolving Skies"},
	"tcgplayer": {"normal": {"market": 20.0, "low": 15.0, "high": 90.0, "mid": 999.99}},
	"cardmarket": {"trendPrice": 30.0, "averagePrice": 28.0},
	"price_charting": {"product-name": "Charizard #4", "loose-price": 2100}
}`

// PikachuPayload has no cross-marketplace spread worth trading.
const PikachuPayload = `{
	"name": "Pikachu", "number": "25", "rarity": "Common",
	"set": {"name": "Paldea Evolved"},
	"tcgplayer": {"normal": {"market": 0.50}},
	"cardmarket": {"trendPrice": 0.45}
}`

// NewPoint builds a base-currency price point with the default fee terms of source.
func NewPoint(t *testing.T, source pricing.Source, variant pricing.Variant, priceType pricing.PriceType, price float64) *pricing.PricePoint {
	t.Helper()
	point, err := pricing.NewPricePoint(source, variant, priceType, pricing.ConditionNearMint, price,
		pricing.DefaultFeeSchedule().TermsFor(source))
	if err != nil {
		t.Fatalf("failed to build price point: %v", err)
	}
	return point
}

// NewOpportunity pairs two points without applying thresholds.
func NewOpportunity(t *testing.T, buy, sell *pricing.PricePoint) *trading.ArbitrageOpportunity {
	t.Helper()
	opp, err := trading.NewArbitrageOpportunity(buy, sell)
	if err != nil {
		t.Fatalf("failed to build opportunity: %v", err)
	}
	return opp
}

// NewCard parses a card payload fixture.
func NewCard(t *testing.T, raw string) *extraction.CardPayload {
	t.Helper()
	card, err := extraction.ParseCardPayload([]byte(raw))
	if err != nil {
		t.Fatalf("failed to parse card payload: %v", err)
	}
	return card
}
