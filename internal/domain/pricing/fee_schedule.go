package pricing

import "fmt"

// Defaults applied when a marketplace has no configured terms.
const (
	DefaultFeeRate      = 0.10
	DefaultShippingCost = 1.00
)

// MarketplaceTerms holds what it costs to trade on one marketplace: the
// seller fee as a fraction of price and the buyer's shipping cost.
type MarketplaceTerms struct {
	FeeRate      float64
	ShippingCost float64
}

// Validate checks fee_rate ∈ [0,1) and shipping ≥ 0.
func (t MarketplaceTerms) Validate() error {
	if !isFinite(t.FeeRate) || t.FeeRate < 0 || t.FeeRate >= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidFeeRate, t.FeeRate)
	}
	if !isFinite(t.ShippingCost) || t.ShippingCost < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidShippingCost, t.ShippingCost)
	}
	return nil
}

// FeeSchedule resolves marketplace terms per source. It is immutable after
// construction.
type FeeSchedule struct {
	terms    map[Source]MarketplaceTerms
	defaults MarketplaceTerms
}

// NewFeeSchedule copies the given terms. Invalid entries (including invalid
// defaults) are replaced by the package defaults so lookups always yield
// usable terms.
func NewFeeSchedule(terms map[Source]MarketplaceTerms, defaults MarketplaceTerms) *FeeSchedule {
	if defaults.Validate() != nil {
		defaults = MarketplaceTerms{FeeRate: DefaultFeeRate, ShippingCost: DefaultShippingCost}
	}

	copied := make(map[Source]MarketplaceTerms, len(terms))
	for source, t := range terms {
		if t.Validate() != nil {
			continue
		}
		copied[source] = t
	}

	return &FeeSchedule{terms: copied, defaults: defaults}
}

// DefaultFeeSchedule returns the built-in terms: TCGplayer 15%, Cardmarket
// 5%, PriceCharting 13%, domestic shipping $1.00 and international shipping
// $3.00 for Cardmarket.
func DefaultFeeSchedule() *FeeSchedule {
	return DefaultFeeSettings().Schedule()
}

// TermsFor returns the terms for a source, or the defaults when the source is
// not configured.
func (s *FeeSchedule) TermsFor(source Source) MarketplaceTerms {
	if s == nil {
		return MarketplaceTerms{FeeRate: DefaultFeeRate, ShippingCost: DefaultShippingCost}
	}
	if t, ok := s.terms[source]; ok {
		return t
	}
	return s.defaults
}

// HasTerms reports whether the source has explicit terms.
func (s *FeeSchedule) HasTerms(source Source) bool {
	if s == nil {
		return false
	}
	_, ok := s.terms[source]
	return ok
}
