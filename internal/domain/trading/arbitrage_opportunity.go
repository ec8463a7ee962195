package trading

import (
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// ArbitrageOpportunity represents an immutable buy-here, sell-there pairing.
//
// Price terminology (from the trader's perspective):
//   - BuyCost: what we pay to acquire the card (price + shipping at the buy source)
//   - SellNet: what we keep after selling (price × (1 − fee) at the sell source)
//
// Immutability: All fields are private with read-only getters to ensure value object semantics.
type ArbitrageOpportunity struct {
	buyPoint     *pricing.PricePoint
	sellPoint    *pricing.PricePoint
	profit       float64 // sellNet - buyCost
	profitMargin float64 // profit / buyCost × 100
}

// NewArbitrageOpportunity creates an opportunity and computes profit and margin.
// It does not apply thresholds; ArbitrageCalculator decides which pairs to keep.
//
// Returns error if:
//   - either point is nil
//   - the buy cost is not positive
func NewArbitrageOpportunity(buy, sell *pricing.PricePoint) (*ArbitrageOpportunity, error) {
	if buy == nil || sell == nil {
		return nil, ErrMissingPricePoint
	}
	buyCost := buy.BuyCost()
	if buyCost <= 0 {
		return nil, ErrZeroBuyCost
	}

	profit := sell.SellNet() - buyCost
	return &ArbitrageOpportunity{
		buyPoint:     buy,
		sellPoint:    sell,
		profit:       profit,
		profitMargin: profit / buyCost * 100,
	}, nil
}

// Getters - provide read-only access to maintain immutability

func (o *ArbitrageOpportunity) BuyPoint() *pricing.PricePoint {
	return o.buyPoint
}

func (o *ArbitrageOpportunity) SellPoint() *pricing.PricePoint {
	return o.sellPoint
}

func (o *ArbitrageOpportunity) BuyPrice() float64 {
	return o.buyPoint.Price()
}

func (o *ArbitrageOpportunity) SellPrice() float64 {
	return o.sellPoint.Price()
}

func (o *ArbitrageOpportunity) BuyCost() float64 {
	return o.buyPoint.BuyCost()
}

func (o *ArbitrageOpportunity) SellNet() float64 {
	return o.sellPoint.SellNet()
}

func (o *ArbitrageOpportunity) Profit() float64 {
	return o.profit
}

// ProfitMargin is expressed in percent.
func (o *ArbitrageOpportunity) ProfitMargin() float64 {
	return o.profitMargin
}

// VariantInfo describes the traded variants, e.g. "holofoil to holofoil".
func (o *ArbitrageOpportunity) VariantInfo() string {
	return fmt.Sprintf("%s to %s", o.buyPoint.Variant(), o.sellPoint.Variant())
}

// String returns a human-readable representation
func (o *ArbitrageOpportunity) String() string {
	return fmt.Sprintf("Arbitrage{buy=%s @%.2f, sell=%s @%.2f, profit=%.2f, margin=%.2f%%}",
		o.buyPoint.Key(), o.BuyCost(), o.sellPoint.Key(), o.SellNet(), o.profit, o.profitMargin)
}
