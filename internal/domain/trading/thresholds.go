package trading

import (
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// Thresholds controls which pairs the calculator keeps.
type Thresholds struct {
	MinProfit        float64 // strict lower bound, base currency
	MinMarginPercent float64 // strict lower bound
	MaxMarginPercent float64 // above this a margin is treated as a data error

	// Plausibility. A sell price above SellPriceCeiling, or a buy price below
	// SuspiciousLowBuy paired with a sell price above SuspiciousHighSell, is
	// considered bad data. A zero SellPriceCeiling follows the validator's
	// absolute ceiling, including class overrides.
	SellPriceCeiling   float64
	SuspiciousLowBuy   float64
	SuspiciousHighSell float64

	DisallowedPriceTypes []pricing.PriceType
	// ReliablePriceTypes, when non-empty, is an allowlist applied on top of
	// DisallowedPriceTypes.
	ReliablePriceTypes []pricing.PriceType
}

// DefaultThresholds returns $1.00 / 10% with a 500% sanity bound.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinProfit:            1.0,
		MinMarginPercent:     10.0,
		MaxMarginPercent:     500.0,
		SellPriceCeiling:     0,
		SuspiciousLowBuy:     0.25,
		SuspiciousHighSell:   500.0,
		DisallowedPriceTypes: []pricing.PriceType{pricing.PriceTypeHigh},
		ReliablePriceTypes: []pricing.PriceType{
			pricing.PriceTypeMarket,
			pricing.PriceTypeTrend,
			pricing.PriceTypeAverage,
			pricing.PriceTypeMid,
			pricing.PriceTypeDirectLow,
			pricing.PriceTypeLoose,
		},
	}
}

// Validate rejects negative thresholds and an inverted margin window.
func (t Thresholds) Validate() error {
	if t.MinProfit < 0 || t.MinMarginPercent < 0 {
		return fmt.Errorf("%w: minimums must not be negative", ErrInvalidThresholds)
	}
	if t.MaxMarginPercent > 0 && t.MaxMarginPercent <= t.MinMarginPercent {
		return fmt.Errorf("%w: max margin %.2f must exceed min margin %.2f",
			ErrInvalidThresholds, t.MaxMarginPercent, t.MinMarginPercent)
	}
	if t.SellPriceCeiling < 0 || t.SuspiciousLowBuy < 0 || t.SuspiciousHighSell < 0 {
		return fmt.Errorf("%w: plausibility bounds must not be negative", ErrInvalidThresholds)
	}
	return nil
}
